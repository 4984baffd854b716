package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/spf13/cobra"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	archiveService "schoolku_backend/internals/features/archives/archive/service"
	announcementService "schoolku_backend/internals/features/communication/announcements/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/mailer"
	"schoolku_backend/internals/helpers/storage"
	middlewares "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routes "schoolku_backend/internals/route"
	"schoolku_backend/internals/seeds"
)

func main() {
	root := &cobra.Command{
		Use:          "schoolku",
		Short:        "Application de gestion scolaire",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error { return serve() },
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Démarrer le serveur HTTP",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Créer ou mettre à jour les tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				connect()
				return database.Migrate(database.DB)
			},
		},
		seedCommand(),
		&cobra.Command{
			Use:   "purge-trash",
			Short: "Vider la corbeille des archives expirées",
			RunE: func(cmd *cobra.Command, args []string) error {
				connect()
				st := storage.NewFromEnv(configs.StoragePath)
				n, err := archiveService.PurgeExpired(cmd.Context(), database.DB, st, dbtime.Now(), configs.TrashRetention)
				if err != nil {
					return err
				}
				log.Printf("[INFO] %d dossier dihapus permanen", n)
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func seedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Charger les données de démonstration",
		RunE: func(cmd *cobra.Command, args []string) error {
			connect()
			if err := database.Migrate(database.DB); err != nil {
				return err
			}
			return seeds.RunAllSeeds(cmd.Context(), database.DB, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", seeds.DefaultDataFile, "fichier JSON des données")
	return cmd
}

func connect() {
	database.ConnectDB()
	database.TunePool()
}

func serve() error {
	connect()
	if configs.GetEnvBool("AUTO_MIGRATE", true) {
		if err := database.Migrate(database.DB); err != nil {
			return err
		}
	}
	if configs.GetEnv("APP_ENV") == "production" {
		helper.Sessions = helper.NewSessionStore(true)
	}

	engine := html.New("./views", ".html")
	engine.AddFuncMap(helper.TemplateFuncs())
	engine.Reload(configs.GetEnv("APP_ENV") != "production")

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		Views:                   engine,
		ViewsLayout:             "layouts/main",
		PassLocalsToViews:       true,
		ErrorHandler:            middlewares.ErrorHandler,
		BodyLimit:               configs.MaxUploadMB * 1024 * 1024,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	metrics := middlewares.NewMetrics()
	middlewares.SetupMiddlewares(app, metrics)
	app.Use(authMiddleware.LoadUser(database.DB))

	st := storage.NewFromEnv(configs.StoragePath)
	notifier := announcementService.NewNotifier(configs.LoadWhatsAppConfig())
	sender := mailer.New(configs.SendGridAPIKey, configs.AppName, configs.MailFrom)
	log.Printf("[INFO] storage=%s mailer=%s", st.Kind(), sender.Kind())

	if phones := notifier.ConfigRecipients(); len(phones) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := announcementService.SeedRecipients(ctx, database.DB, phones); err != nil {
			log.Printf("[WARN] seed destinataires whatsapp: %v", err)
		}
		cancel()
	}

	purge, err := archiveService.StartTrashPurge(database.DB, st, configs.TrashCron, configs.TrashRetention)
	if err != nil {
		log.Printf("[WARN] purge corbeille tidak dijadwalkan: %v", err)
	}

	routes.SetupRoutes(app, routes.Deps{
		DB:          database.DB,
		Store:       st,
		Mailer:      sender,
		Notifier:    notifier,
		Metrics:     metrics,
		StorageRoot: configs.StoragePath,
	})

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutdown...")

	if purge != nil {
		<-purge.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
