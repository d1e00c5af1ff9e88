package main

import (
	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/config"
	"github.com/mint-labs/nft-registry/registry"
	"github.com/mint-labs/nft-registry/registry/db"
	"github.com/mint-labs/nft-registry/server"
)

func init() {
	config.InitSigInt()
}

func main() {
	yamlcfg := config.InitConfig("")
	config.InitLog(yamlcfg)

	common.Log.Info("Starting...")
	defer common.Log.Info("shut down")

	dbDriver, dbPath, owner := "", "", ""
	var metadata *common.ContractMetadata
	rpcAddr, rpcProxy, rpcLogPath := "0.0.0.0:8019", "", ""
	if yamlcfg != nil {
		dbDriver = yamlcfg.DB.Driver
		dbPath = yamlcfg.DB.Path
		owner = yamlcfg.Registry.Owner
		metadata = yamlcfg.Registry.Metadata
		if yamlcfg.RPCService.Addr != "" {
			rpcAddr = yamlcfg.RPCService.Addr
		}
		rpcProxy = yamlcfg.RPCService.Proxy
		rpcLogPath = yamlcfg.RPCService.LogPath
	}

	kvdb := db.NewKVDB(dbDriver, dbPath)
	if kvdb == nil {
		common.Log.Error("open kv store failed")
		return
	}
	defer kvdb.Close()

	reg := registry.NewRegistry(kvdb, registry.NewLogSink())
	if err := reg.Init(owner, metadata); err != nil {
		common.Log.Errorf("registry init failed, %v", err)
		return
	}

	rpc := server.NewRpc(reg)
	if err := rpc.Start(rpcAddr, rpcProxy, rpcLogPath); err != nil {
		common.Log.Errorf("rpc start failed, %v", err)
		return
	}
	common.Log.Infof("rpc service started on %s", rpcAddr)

	stopChan := make(chan bool)
	config.RegistSigIntFunc(func() {
		common.Log.Info("handle SIGINT for close registry")
		stopChan <- true
	})
	<-stopChan

	common.Log.Info("prepare to release resource...")
}
