package config

var Conf *EngineConfiguration

type BaseConfig struct {
	ID         string `mapstructure:"id"`
	MetricPort int    `mapstructure:"metricPort"`
}

// EngineConfiguration 规则引擎进程配置
type EngineConfiguration struct {
	BaseConfig   `mapstructure:",squash"`
	LogConf      `mapstructure:"log"`
	RuleConf     `mapstructure:"rule"`
	TableConf    `mapstructure:"table"`
	CacheConf    `mapstructure:"cache"`
	DatabaseConf `mapstructure:"database"`
	NatsConfig   `mapstructure:"nats"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// RuleConf 对局规则，点数单位为 100 点
type RuleConf struct {
	StartScore  int  `mapstructure:"startScore"`
	ReturnScore int  `mapstructure:"returnScore"`
	MinScore    int  `mapstructure:"minScore"`
	UseRedFives bool `mapstructure:"useRedFives"`
	AllowKuitan bool `mapstructure:"allowKuitan"`
	Hanchan     bool `mapstructure:"hanchan"`
	// MaxRound 延长战最多到西4局，局数从 0 开始
	MaxRound int `mapstructure:"maxRound"`
}

// TableConf 和牌/听牌表的持久化位置
type TableConf struct {
	Path    string `mapstructure:"path"`
	Rebuild bool   `mapstructure:"rebuild"`
}

type CacheConf struct {
	MaxCost int64 `mapstructure:"maxCost"`
	// TTL 秒
	TTL int `mapstructure:"ttl"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	// SnapshotTTL 秒
	SnapshotTTL int `mapstructure:"snapshotTTL"`
}

type NatsConfig struct {
	URL     string `json:"url" mapstructure:"url"`
	Subject string `json:"subject" mapstructure:"subject"`
}

// Enabled 未配置地址时对应组件不启用
func (c MongoConf) Enabled() bool { return c.Url != "" }

func (c RedisConf) Enabled() bool {
	return c.Addr != "" || (c.Host != "" && c.Port > 0) || len(c.ClusterAddrs) > 0
}

func (c NatsConfig) Enabled() bool { return c.URL != "" }
