package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/mint-labs/nft-registry/common"
)

type YamlConf struct {
	DB         DB         `yaml:"db"`
	Log        Log        `yaml:"log"`
	RPCService RPCService `yaml:"rpc_service"`
	Registry   Registry   `yaml:"registry"`
}

type DB struct {
	Driver string `yaml:"driver"` // pebble (default), leveldb, badger
	Path   string `yaml:"path"`
}

type Log struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type RPCService struct {
	Addr    string `yaml:"addr"`
	Proxy   string `yaml:"proxy"`
	LogPath string `yaml:"log_path"`
}

type Registry struct {
	Owner    string                   `yaml:"owner"`
	Metadata *common.ContractMetadata `yaml:"metadata"`
}

func GetBaseDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "./."
	}
	return filepath.Dir(execPath)
}

func InitConfig(configFile string) *YamlConf {
	if configFile == "" {
		for i, item := range os.Args {
			if item == "-env" {
				if i+1 < len(os.Args) {
					configFile = os.Args[i+1]
					break
				}
			}
		}
		if configFile == "" {
			configFile = "./.env"
		}
	}
	if !strings.HasPrefix(configFile, "/") {
		configFile = filepath.Join(GetBaseDir(), configFile)
	}

	fmt.Printf("config file: %s\n", configFile)

	cfg, err := LoadYamlConf(configFile)
	if err != nil {
		return nil
	}
	return cfg
}

func LoadYamlConf(cfgPath string) (*YamlConf, error) {
	confFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("open config %s failed, %v", cfgPath, err)
	}
	defer confFile.Close()

	conf := &YamlConf{}
	if err := yaml.NewDecoder(confFile).Decode(conf); err != nil {
		return nil, fmt.Errorf("decode config %s failed, %v", cfgPath, err)
	}
	return conf, nil
}
