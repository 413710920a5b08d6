// The analyzer is the nightly batch binary: one invocation per day from
// an external scheduler. It exits non-zero only on unrecoverable setup
// failure; per-employee analysis errors are logged and absorbed so a
// single bad record never kills the run.
package main

import (
	"log"
	"os"
	"time"

	"field-presence-backend/config"
	applogger "field-presence-backend/internal/logger"
	"field-presence-backend/internal/notifier"
	"field-presence-backend/internal/repository"
	"field-presence-backend/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	zlog, err := applogger.New(config.GetEnv("APP_ENV", "dev"))
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()

	if err := config.ConnectDB(); err != nil {
		zlog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	db := config.DB

	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	riskRepo := repository.NewRiskRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	var channels []notifier.Channel
	if host := config.GetEnv("SMTP_HOST", ""); host != "" {
		channels = append(channels, notifier.NewEmailChannel(
			host,
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USERNAME", ""),
			config.GetEnv("SMTP_PASSWORD", ""),
			config.GetEnv("SMTP_FROM", "alerts@localhost"),
		))
	}
	dispatcher := usecase.NewAlertDispatcher(notifRepo, userRepo, channels, zlog)

	analysisDate := time.Now()
	if raw := config.GetEnv("ANALYSIS_DATE", ""); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			zlog.Error("invalid ANALYSIS_DATE", "value", raw, "error", err)
			os.Exit(1)
		}
		analysisDate = parsed
	}

	analyzer := usecase.NewRiskAnalyzer(userRepo, attRepo, incidentRepo, riskRepo, dispatcher, settingRepo, zlog)
	riskSummary, err := analyzer.Run(analysisDate)
	if err != nil {
		zlog.Error("risk analysis aborted", "error", err)
		os.Exit(1)
	}

	builder := usecase.NewInfluenceGraphBuilder(branchRepo, attRepo, riskRepo, settingRepo, zlog)
	influenceSummary, err := builder.Run(analysisDate)
	if err != nil {
		zlog.Error("influence graph build aborted", "error", err)
		os.Exit(1)
	}

	zlog.Info("nightly analysis finished",
		"analyzed", riskSummary.Analyzed,
		"failed", riskSummary.Failed,
		"high_risk", riskSummary.HighRisk,
		"medium_risk", riskSummary.MediumRisk,
		"edges_upserted", influenceSummary.EdgesUpserted,
	)
}
