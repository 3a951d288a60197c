package setup

import (
	"bufio"
	"context"
	"net"
	"os"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"

	appconfig "github.com/quantumauth-io/credential-minter/cmd/credential-minter/config"
	"github.com/quantumauth-io/credential-minter/internal/chains"
	clienthttp "github.com/quantumauth-io/credential-minter/internal/http"
	"github.com/quantumauth-io/credential-minter/internal/ipfs"
	"github.com/quantumauth-io/credential-minter/internal/networks"
	"github.com/quantumauth-io/credential-minter/internal/session"
	"github.com/quantumauth-io/credential-minter/internal/txtracker"
	"github.com/quantumauth-io/credential-minter/internal/ui"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

const shutdownTimeout = 5 * time.Second

type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

func Run(ctx context.Context, build BuildInfo) error {
	log.Info("credential-minter",
		"version", build.Version,
		"commit", build.Commit,
		"build_date", build.BuildDate,
	)

	// ---- Config
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Contract.Address == "" {
		log.Warn("contract address not configured, credential calls will fail", "env", appconfig.EnvContractAddress)
	}
	if cfg.Storage.JWT == "" {
		log.Warn("pinning token not configured, uploads are disabled", "env", appconfig.EnvPinataJWT)
	}

	// ---- Chains
	chainsSvc, err := chains.NewService(cfg.Chains)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := chainsSvc.Close(); cerr != nil {
			log.Error("chains close failed", "error", cerr)
		}
	}()

	active, _, err := chainsSvc.Active()
	if err != nil {
		return err
	}
	log.Info("network ready", "network", active.NetworkName, "chain_id", active.ChainID, "rpc", active.RPCName)

	networksPath, err := networks.DefaultPath(wallet.AppName)
	if err != nil {
		return err
	}
	networksManager, err := networks.NewManager(networksPath, chainsSvc)
	if err != nil {
		return err
	}
	restored, err := networksManager.Restore()
	if err != nil {
		return err
	}
	if restored > 0 {
		log.Info("saved networks restored", "count", restored, "path", networksManager.Path())
	}

	// ---- Keyring + local wallet
	stdin := bufio.NewReader(os.Stdin)
	opener, err := defaultKeyringOpener(stdin)
	if err != nil {
		return err
	}
	keys, err := opener.open()
	if err != nil {
		return err
	}
	for _, addr := range keys.Addresses() {
		log.Info("keyring account", "address", addr.Hex())
	}

	localWallet, err := wallet.NewLocalWallet(ctx, keys, networksManager, active.ChainIDHex,
		wallet.WithApproval(wallet.TerminalApproval(stdin, os.Stderr)),
	)
	if err != nil {
		return err
	}

	// ---- Session
	tracker := txtracker.New(txtracker.WithRetention(time.Duration(cfg.Tracker.RetentionMinutes) * time.Minute))
	mgr := session.NewManager(cfg.Contract.Address,
		session.WithProvider(localWallet),
		session.WithTracker(tracker),
	)
	defer mgr.Close()

	unsubscribe := mgr.OnWalletChange(func(ch session.WalletChange) {
		log.Info("wallet changed", "reason", ch.Reason, "account", ch.Account, "chain_id", ch.ChainID)
	})
	defer unsubscribe()

	// ---- Content storage
	ipfsClient := ipfs.NewClient(cfg.Storage)

	// ---- HTTP server
	handler := clienthttp.NewHandler(mgr, tracker, ipfsClient, chainsSvc, localWallet)
	srv := ui.NewService(ui.Config{Addr: net.JoinHostPort(cfg.Server.LocalHost, cfg.Server.Port)},
		clienthttp.NewRouter(handler, cfg.HTTP))
	if err := srv.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-srv.Err():
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	log.Info("HTTP server gracefully stopped")
	return nil
}
