package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/btcq-org/ctoken/constants"
	"github.com/btcq-org/ctoken/ledger/localnet"
	"github.com/btcq-org/ctoken/ledger/rpc"
)

const envPrefix = "CTOKEN"

type Config struct {
	Ledger            rpc.Config      `mapstructure:"ledger" json:"ledger"`
	Localnet          localnet.Config `mapstructure:"localnet" json:"localnet"`
	RootPath          string          `mapstructure:"root_path" json:"root_path"`
	PayerKeyName      string          `mapstructure:"payer_key_name" json:"payer_key_name"`
	RegistryDBPath    string          `mapstructure:"registry_db_path" json:"registry_db_path"`
	HTTPListenAddress string          `mapstructure:"http_listen_address" json:"http_listen_address"`
	RPCListenAddress  string          `mapstructure:"rpc_listen_address" json:"rpc_listen_address"`
	MaxPendingCredits uint64          `mapstructure:"max_pending_credits" json:"max_pending_credits"`
	Mint              MintConfig      `mapstructure:"mint" json:"mint"`
}

// MintConfig describes mints created by the wallet.
type MintConfig struct {
	Decimals uint8 `mapstructure:"decimals" json:"decimals"`
}

func DefaultConfig() *Config {
	return &Config{
		Ledger:            rpc.Config{URL: "127.0.0.1:8899"},
		Localnet:          localnet.Config{DBPath: ".ctoken/ledger", CompactOnInit: true},
		RootPath:          ".ctoken",
		PayerKeyName:      "payer",
		RegistryDBPath:    ".ctoken/registry",
		HTTPListenAddress: "127.0.0.1:8080",
		RPCListenAddress:  "127.0.0.1:8899",
		MaxPendingCredits: constants.Get(constants.MaximumPendingBalanceCreditCounter),
		Mint:              MintConfig{Decimals: 6},
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("ledger.url", def.Ledger.URL)
	v.SetDefault("ledger.user", def.Ledger.User)
	v.SetDefault("ledger.password", def.Ledger.Password)
	v.SetDefault("localnet.db_path", def.Localnet.DBPath)
	v.SetDefault("localnet.compact_on_init", def.Localnet.CompactOnInit)
	v.SetDefault("root_path", def.RootPath)
	v.SetDefault("payer_key_name", def.PayerKeyName)
	v.SetDefault("registry_db_path", def.RegistryDBPath)
	v.SetDefault("http_listen_address", def.HTTPListenAddress)
	v.SetDefault("rpc_listen_address", def.RPCListenAddress)
	v.SetDefault("max_pending_credits", def.MaxPendingCredits)
	v.SetDefault("mint.decimals", def.Mint.Decimals)
}

// GetConfig reads the JSON config at path, or ./config.json when path is
// empty. A missing default config file is not an error. Environment
// variables such as CTOKEN_LEDGER_URL override file values.
func GetConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("json")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if cfg.MaxPendingCredits == 0 {
		return nil, fmt.Errorf("max_pending_credits must be positive")
	}
	return &cfg, nil
}
