package config

// Subscriptions is the shape of the optional seed file: a flat list of feed
// URLs subscribed to at startup.
type Subscriptions struct {
	Feeds []string `yaml:"feeds"`
}
