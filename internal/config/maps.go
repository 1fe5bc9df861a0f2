package config

type MapsConfig struct {
	Provider          string `yaml:"provider"`
	MapboxAccessToken string `yaml:"mapbox_access_token"`
	GoogleAPIKey      string `yaml:"google_api_key"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider:          getEnv("MAPS_PROVIDER", "mapbox"),
		MapboxAccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),
		GoogleAPIKey:      getEnv("GOOGLE_MAPS_API_KEY", ""),
	}
}
