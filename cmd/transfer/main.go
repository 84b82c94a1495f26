package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/flashbots/go-utils/cli"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	go_fusion "fusiongo"
	"fusiongo/config"
	"fusiongo/connection"
	"fusiongo/jito"
	"fusiongo/priorityFee"
	"fusiongo/tx"
)

var (
	version = "dev" // is set during build process

	// Default values
	defaultDebug       = os.Getenv("DEBUG") == "1"
	defaultLogProd     = os.Getenv("LOG_PROD") == "1"
	defaultConfig      = cli.GetEnv("SMARTTX_CONFIG", "config.yaml")
	defaultKeypair     = cli.GetEnv("KEYPAIR", os.ExpandEnv("$HOME/.config/solana/id.json"))
	defaultMetricsAddr = cli.GetEnv("METRICS_ADDR", "")

	// Flags
	debugPtr       = flag.Bool("debug", defaultDebug, "print debug output")
	logProdPtr     = flag.Bool("log-prod", defaultLogProd, "log in production mode (json)")
	configPtr      = flag.String("config", defaultConfig, "yaml config file")
	keypairPtr     = flag.String("keypair", defaultKeypair, "payer keypair file written by solana-keygen")
	toPtr          = flag.String("to", "", "recipient address")
	lamportsPtr    = flag.String("lamports", "1", "lamports to transfer")
	feeLevelPtr    = flag.String("fee-level", "", "priority fee level, overrides the config file (none, low, medium, high, veryHigh, ultimate, or a custom fee)")
	metricsAddrPtr = flag.String("metrics-addr", defaultMetricsAddr, "serve prometheus metrics on this address while sending")
)

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	if *logProdPtr {
		atom := zap.NewAtomicLevel()
		if *debugPtr {
			atom.SetLevel(zap.DebugLevel)
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		logger = zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(os.Stdout),
			atom,
		))
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting smart transaction transfer", zap.String("version", version))

	fileConfig, err := config.LoadConfig(*configPtr)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	txConfig, err := fileConfig.Tx.SmartTxConfig()
	if err != nil {
		logger.Fatal("Invalid tx config", zap.Error(err))
	}
	if *feeLevelPtr != "" {
		level, err := priorityFee.ParsePriorityFeeLevel(*feeLevelPtr)
		if err != nil {
			logger.Fatal("Invalid fee level", zap.Error(err))
		}
		if txConfig.PriorityFee == nil {
			txConfig.PriorityFee = &tx.PriorityFeeConfig{}
		}
		txConfig.PriorityFee.FeeLevel = level
	}

	wallet, err := go_fusion.CreateWalletFromKeygenFile(*keypairPtr)
	if err != nil {
		logger.Fatal("Failed to load keypair", zap.Error(err))
	}
	recipient, err := solana.PublicKeyFromBase58(*toPtr)
	if err != nil {
		logger.Fatal("Invalid recipient", zap.String("to", *toPtr), zap.Error(err))
	}
	lamports, err := strconv.ParseUint(*lamportsPtr, 10, 64)
	if err != nil {
		logger.Fatal("Invalid lamports", zap.Error(err))
	}

	if *metricsAddrPtr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.WritePrometheus(w, true)
		})
		go func() {
			if err := http.ListenAndServe(*metricsAddrPtr, metricsMux); err != nil {
				logger.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	manager := connection.CreateManager()
	manager.AddConfig(fileConfig.Rpc)

	jitoClientConfig := jito.ClientConfig{}
	if fileConfig.Tx.Jito != nil {
		jitoClientConfig.RateLimit = fileConfig.Tx.Jito.RateLimit
	}
	sender := tx.CreateSmartTxSender(tx.SmartTxSenderConfig{
		Connection: manager.GetRpc(),
		JitoClient: jito.CreateClient(jitoClientConfig),
		Logger:     logger,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := sender.SendSmartTransaction(
		ctx,
		go_fusion.CreateSigners(wallet),
		wallet.GetPublicKey(),
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, wallet.GetPublicKey(), recipient).Build(),
		},
		nil,
		txConfig,
	)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if result != nil {
			fields = append(fields, zap.Stringer("state", result.State), zap.Stringer("elapsed", result.ElapsedTime))
		}
		logger.Fatal("Transfer failed", fields...)
	}

	fields := []zap.Field{
		zap.Stringer("state", result.State),
		zap.Uint64("priorityFee", result.PriorityFee),
		zap.Uint32("computeUnitLimit", result.ComputeUnitLimit),
		zap.Stringer("elapsed", result.ElapsedTime),
	}
	if result.Signature != nil {
		fields = append(fields, zap.Stringer("signature", result.Signature))
	}
	if result.JitoBundleId != nil {
		fields = append(fields, zap.String("bundleId", *result.JitoBundleId))
	}
	logger.Info("Transfer sent", fields...)
}
