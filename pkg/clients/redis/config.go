package redis

type Config struct {
	// host:port address.
	Host     string `json:"host" yaml:"host"`
	Password string `json:"password" yaml:"password"`
	// Database to be selected after connecting to the server.
	Db int `json:"db" yaml:"db"`
	// Maximum number of socket connections.
	PoolSize int `json:"pool_size" yaml:"poolSize"`
	// Maximum number of retries before giving up.
	// Default is 3 retries; -1 (not 0) disables retries.
	MaxRetries int `json:"max_retries" yaml:"maxRetries"`
	// Connection age at which client retires (closes) the connection.
	MaxConnAge int64 `json:"max_conn_age" yaml:"maxConnAge"`
	// Dial timeout for establishing new connections.
	DialTimeout int64 `json:"dial_timeout" yaml:"dialTimeout"`
	// Timeout for socket reads; commands fail instead of blocking.
	ReadTimeout int64 `json:"read_timeout" yaml:"readTimeout"`
	// Timeout for socket writes.
	WriteTimeout int64 `json:"write_timeout" yaml:"writeTimeout"`
	// Minimum number of idle connections.
	MinIdleConns int `json:"min_idle_conns" yaml:"minIdleConns"`
	// Time to wait for a connection when the pool is exhausted.
	PoolTimeout int64 `json:"pool_timeout" yaml:"poolTimeout"`
	// Time after which idle connections are closed.
	IdleTimeout int64 `json:"idle_timeout" yaml:"idleTimeout"`
}

// DefaultConfig fills unset fields with workable defaults.
func (c *Config) DefaultConfig() {
	if c.PoolSize == 0 {
		c.PoolSize = 100
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 30
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 5
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 5
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 10
	}
	if c.MaxConnAge == 0 {
		c.MaxConnAge = 1
	}
	if c.PoolTimeout == 0 {
		c.PoolTimeout = 30
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 30
	}
}
