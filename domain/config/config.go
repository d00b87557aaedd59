package config

// Config represents the structure of config.yml used by the tool.
type Config struct {
	Input struct {
		Path  string `yaml:"path"`
		Sheet string `yaml:"sheet"`
	} `yaml:"input"`
	Output struct {
		DataDir    string   `yaml:"data_dir"`
		Formats    []string `yaml:"formats"`
		ChartTitle string   `yaml:"chart_title"`
	} `yaml:"output"`
	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`
	LogLevel string `yaml:"log_level"`
}
