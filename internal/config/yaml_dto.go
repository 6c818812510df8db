package config

// YAMLConfig mirrors the on-disk config file. Map validates it into a Config.
type YAMLConfig struct {
	Server    YAMLServer    `yaml:"server"`
	Calc      YAMLCalc      `yaml:"calc"`
	RateLimit YAMLRateLimit `yaml:"ratelimit"`
	Metrics   YAMLMetrics   `yaml:"metrics"`
}

// YAMLServer holds the server section.
type YAMLServer struct {
	Port string `yaml:"port"`
}

// YAMLCalc holds the calculator section: timezone, default schedule, pricing
// and the per-language rates.
type YAMLCalc struct {
	TimeZone  string                  `yaml:"timeZone"`
	WorkDays  []int                   `yaml:"workDays"`
	WorkTime  []int                   `yaml:"workTime"`
	MinTime   int64                   `yaml:"minTime"`
	DiscTypes []string                `yaml:"discTypes"`
	UTypesTax float64                 `yaml:"uTypesTax"`
	Lang      map[string]YAMLLanguage `yaml:"lang"`
}

// YAMLLanguage uses the short keys of the calculator config: price per letter,
// minimum price and letters per hour.
type YAMLLanguage struct {
	PL  float64 `yaml:"pl"`
	Min float64 `yaml:"min"`
	LPH float64 `yaml:"lph"`
}

// YAMLRateLimit holds the ratelimit section.
type YAMLRateLimit struct {
	RPS            float64  `yaml:"rps"`
	Burst          int      `yaml:"burst"`
	TrustedProxies []string `yaml:"trustedProxies"`
}

// YAMLMetrics holds the metrics section.
type YAMLMetrics struct {
	RedisAddr string `yaml:"redisAddr"`
	Prefix    string `yaml:"prefix"`
}
