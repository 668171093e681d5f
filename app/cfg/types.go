package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port              string
	SeedFile          string
	WorkerCount       int
	SchedulerInterval int
	FetchTimeout      int
	ExtractContent    bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
