// partsdesk-export — CLI утилита для скачивания xlsx экспортов портала
// без запуска TUI. Удобна для cron и скриптов.
//
// Использование:
//
//	PARTSDESK_EMAIL=admin@x PARTSDESK_PASSWORD=secret \
//	  ./partsdesk-export -what orders
//	./partsdesk-export -what order -id 42
//	./partsdesk-export -what backorders
//	./partsdesk-export -what template -type PARTS
//
// Учетные данные берутся из переменных окружения PARTSDESK_EMAIL и
// PARTSDESK_PASSWORD — флаги командной строки попадают в историю shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/config"
	"github.com/ilkoid/partsdesk/pkg/export"
	"github.com/ilkoid/partsdesk/pkg/importjob"
	"github.com/ilkoid/partsdesk/pkg/query"
	"github.com/ilkoid/partsdesk/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "путь к конфигурационному файлу")
	what := flag.String("what", "orders", "что скачивать: orders, order, backorders, template")
	id := flag.String("id", "", "id заказа для -what order")
	typ := flag.String("type", "", "тип импорта для -what template (PARTS, DEALERS, ...)")
	flag.Parse()

	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", *configPath, err)
	}

	apiClient, err := api.NewFromConfig(cfg.API)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	email := os.Getenv("PARTSDESK_EMAIL")
	password := os.Getenv("PARTSDESK_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("PARTSDESK_EMAIL and PARTSDESK_PASSWORD must be set")
	}

	// Ctrl+C отменяет контекст: долгий экспорт можно прервать
	baseCtx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	ctx, cancel := context.WithTimeout(baseCtx, 2*time.Minute)
	defer cancel()

	profile, err := apiClient.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	utils.Info("Logged in", "email", profile.Email)

	blob, fallback, err := fetchBlob(ctx, apiClient, *what, *id, *typ)
	if err != nil {
		return err
	}

	saver := export.NewSaver(cfg.App.DownloadDir)
	path, err := saver.Save(blob, fallback)
	if err != nil {
		return fmt.Errorf("save export: %w", err)
	}

	fmt.Println(path)
	return nil
}

// fetchBlob выбирает endpoint по флагу -what.
func fetchBlob(ctx context.Context, apiClient *api.Client, what, id, typ string) (*api.Blob, string, error) {
	switch what {
	case "orders":
		blob, err := apiClient.ExportOrders(ctx, nil)
		return blob, "orders.xlsx", err
	case "order":
		if id == "" {
			return nil, "", fmt.Errorf("-what order requires -id")
		}
		blob, err := apiClient.ExportOrder(ctx, id)
		return blob, fmt.Sprintf("order-%s.xlsx", id), err
	case "backorders":
		blob, err := apiClient.ExportBackorders(ctx, nil)
		return blob, "backorders.xlsx", err
	case "template":
		if typ == "" {
			return nil, "", fmt.Errorf("-what template requires -type")
		}
		imports := importjob.New(apiClient, query.NewStore())
		blob, err := imports.Template(ctx, importjob.Type(typ))
		return blob, fmt.Sprintf("template-%s.xlsx", typ), err
	default:
		return nil, "", fmt.Errorf("unknown -what: %q", what)
	}
}
