package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"

	_ "go.uber.org/automaxprocs"

	"github.com/go-chi/chi/v5"

	"github.com/iqbalbaharum/predictr-client/internal/adapter"
	"github.com/iqbalbaharum/predictr-client/internal/arch"
	"github.com/iqbalbaharum/predictr-client/internal/config"
	"github.com/iqbalbaharum/predictr-client/internal/handler"
	"github.com/iqbalbaharum/predictr-client/internal/market"
	"github.com/iqbalbaharum/predictr-client/internal/poller"
	"github.com/iqbalbaharum/predictr-client/internal/rpc"
	"github.com/iqbalbaharum/predictr-client/internal/storage"
	"github.com/iqbalbaharum/predictr-client/internal/types"
	"github.com/iqbalbaharum/predictr-client/internal/wallet"
)

type Server struct {
	Router *chi.Mux
}

func CreateServer(service *market.Service, hub *handler.Hub) *Server {
	return &Server{
		Router: handler.CreateRoutes(service, hub),
	}
}

var wg sync.WaitGroup

func main() {
	numCPU := runtime.NumCPU() * 2
	maxProcs := runtime.GOMAXPROCS(0)
	log.Printf("Number of logical CPUs available: %d", numCPU)
	log.Printf("Number of CPUs being used: %d", maxProcs)

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	err := config.InitEnv()
	if err != nil {
		log.Print(err)
		return
	}

	err = adapter.InitRedisClient(config.RedisAddr, config.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
		return
	}

	err = adapter.InitMySQLClient(config.MySqlDsn, config.MySqlDbName)
	if err != nil {
		log.Fatalf("Failed to initialize SQL client: %v", err)
		return
	}

	log.Print("Initialized ENVIRONMENT successfully")

	mySqlClient, err := adapter.GetMySQLClient()
	if err != nil {
		panic(err)
	}

	storage.Init(mySqlClient)

	w, err := createWallet()
	if err != nil {
		log.Fatalf("Failed to initialize wallet: %v", err)
		return
	}

	client := rpc.NewClient(config.RpcHttpUrl)
	service := market.NewService(
		client,
		w,
		config.ProgramPubkey,
		config.EventAccountPubkey,
		config.TokenAccountPubkey,
	)

	if address, err := w.Address(context.Background()); err == nil {
		log.Printf("Wallet address: %s", address)
	}

	hub := handler.NewHub()
	snapshots := make(chan types.Snapshot)

	redisClient, err := adapter.GetRedisClient()
	if err != nil {
		panic(err)
	}

	// Worker pool persisting and fanning out polled snapshots
	for i := 0; i < numCPU; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for snapshot := range snapshots {
				if err := storage.SetLatestSnapshot(redisClient, &snapshot); err != nil {
					log.Printf("Error caching snapshot: %v", err)
				}

				persistPredictions(&snapshot)
				hub.Broadcast(snapshot)
			}
		}()
	}

	p := poller.New(service, config.PollInterval, snapshots)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := p.Run(context.Background()); err != nil {
			log.Printf("Poller stopped: %v", err)
		}
	}()

	server := CreateServer(service, hub)
	port := fmt.Sprintf(":%d", config.Port)
	fmt.Printf("server running on port%s \n", port)

	http.ListenAndServe(port, server.Router)

	close(snapshots)
	wg.Wait()
}

func createWallet() (wallet.Wallet, error) {
	switch config.WalletProvider {
	case config.WalletProviderUnisat:
		return wallet.NewBridge(config.WalletBridgeUrl), nil
	case config.WalletProviderLocal:
		return wallet.NewLocalWallet(config.WalletPrivateKey)
	default:
		return nil, fmt.Errorf("unknown wallet provider %q", config.WalletProvider)
	}
}

func persistPredictions(snapshot *types.Snapshot) {
	if snapshot.Event == nil {
		return
	}

	for _, p := range snapshot.Event.Predictions {
		record := &types.PredictionRecord{
			UniqueID:        arch.UniqueIDToString(p.UniqueID),
			Creator:         hex.EncodeToString(p.Creator[:]),
			ExpiryTimestamp: p.ExpiryTimestamp,
			TotalPoolAmount: p.TotalPoolAmount,
			Status:          uint8(p.Status),
			WinningOutcome:  p.WinningOutcome,
			NumOutcomes:     len(p.Outcomes),
		}

		if err := storage.Prediction.Upsert(record); err != nil {
			log.Printf("Error upserting prediction %s: %v", record.UniqueID, err)
		}
	}
}
