package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "ROCKETCART"

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"

	BackendFile  = "file"
	BackendRedis = "redis"
)

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StockServer struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	GRPCAddr        string        `mapstructure:"grpc_addr"`
	MySQLDSN        string        `mapstructure:"mysql_dsn"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	StockCacheTTL   time.Duration `mapstructure:"stock_cache_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	OTLPEndpoint    string        `mapstructure:"otlp_endpoint"`
	Log             Log           `mapstructure:"log"`
}

type Lookup struct {
	Transport  string `mapstructure:"transport"`
	HTTPURL    string `mapstructure:"http_url"`
	GRPCTarget string `mapstructure:"grpc_target"`
}

type Storage struct {
	Backend   string `mapstructure:"backend"`
	FilePath  string `mapstructure:"file_path"`
	RedisAddr string `mapstructure:"redis_addr"`
	Key       string `mapstructure:"key"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type CartClient struct {
	Lookup         Lookup        `mapstructure:"lookup"`
	Storage        Storage       `mapstructure:"storage"`
	Kafka          Kafka         `mapstructure:"kafka"`
	SessionID      string        `mapstructure:"session_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	OTLPEndpoint   string        `mapstructure:"otlp_endpoint"`
	Log            Log           `mapstructure:"log"`
}

var stockServerDefaults = map[string]interface{}{
	"http_addr":        ":8080",
	"grpc_addr":        ":50051",
	"mysql_dsn":        "root:root@tcp(localhost:3306)/rocketcart?parseTime=true",
	"redis_addr":       "localhost:6379",
	"stock_cache_ttl":  30 * time.Second,
	"shutdown_timeout": 5 * time.Second,
	"otlp_endpoint":    "",
	"log.level":        "info",
	"log.format":       "json",
}

var cartClientDefaults = map[string]interface{}{
	"lookup.transport":   TransportHTTP,
	"lookup.http_url":    "http://localhost:8080",
	"lookup.grpc_target": "localhost:50051",
	"storage.backend":    BackendFile,
	"storage.file_path":  "rocketcart-cart.json",
	"storage.redis_addr": "localhost:6379",
	"storage.key":        "@RocketShoes:cart",
	"kafka.brokers":      []string{},
	"kafka.topic":        "rocketcart.cart.changed",
	"session_id":         "",
	"request_timeout":    10 * time.Second,
	"otlp_endpoint":      "",
	"log.level":          "warn",
	"log.format":         "text",
}

// flag name -> config key
var stockServerFlags = map[string]string{
	"http-addr":  "http_addr",
	"grpc-addr":  "grpc_addr",
	"mysql-dsn":  "mysql_dsn",
	"redis-addr": "redis_addr",
	"log-level":  "log.level",
}

var cartClientFlags = map[string]string{
	"lookup":    "lookup.transport",
	"stock-url": "lookup.http_url",
	"grpc":      "lookup.grpc_target",
	"storage":   "storage.backend",
	"file":      "storage.file_path",
	"redis":     "storage.redis_addr",
	"brokers":   "kafka.brokers",
	"log-level": "log.level",
}

func RegisterStockServerFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file")
	fs.String("http-addr", "", "HTTP listen address")
	fs.String("grpc-addr", "", "gRPC listen address")
	fs.String("mysql-dsn", "", "MySQL data source name")
	fs.String("redis-addr", "", "Redis address for the stock cache")
	fs.String("log-level", "", "log level")
}

func RegisterCartClientFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file")
	fs.String("lookup", "", "stock lookup transport: http or grpc")
	fs.String("stock-url", "", "base URL of the stock HTTP API")
	fs.String("grpc", "", "gRPC target of the stock service")
	fs.String("storage", "", "cart storage backend: file or redis")
	fs.String("file", "", "cart file path for the file backend")
	fs.String("redis", "", "Redis address for the redis backend")
	fs.StringSlice("brokers", nil, "Kafka brokers for cart events")
	fs.String("log-level", "", "log level")
}

func LoadStockServer(fs *pflag.FlagSet) (StockServer, error) {
	var cfg StockServer
	v, err := load(fs, stockServerDefaults, stockServerFlags)
	if err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode stock server config")
	}
	return cfg, nil
}

func LoadCartClient(fs *pflag.FlagSet) (CartClient, error) {
	var cfg CartClient
	v, err := load(fs, cartClientDefaults, cartClientFlags)
	if err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode cart client config")
	}
	return cfg, cfg.Validate()
}

func (c CartClient) Validate() error {
	switch c.Lookup.Transport {
	case TransportHTTP, TransportGRPC:
	default:
		return errors.Errorf("unknown lookup transport %q", c.Lookup.Transport)
	}
	switch c.Storage.Backend {
	case BackendFile, BackendRedis:
	default:
		return errors.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// load layers, lowest first: defaults, config file, environment, flags set
// on the command line.
func load(fs *pflag.FlagSet, defaults map[string]interface{}, flags map[string]string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs == nil {
		return v, nil
	}

	for name, key := range flags {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", name)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	return v, nil
}
