// PartsDesk TUI Application
// Основная точка входа терминальной админ-консоли дилерского портала
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/partsdesk/internal/ui"
	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/config"
	"github.com/ilkoid/partsdesk/pkg/events"
	"github.com/ilkoid/partsdesk/pkg/export"
	"github.com/ilkoid/partsdesk/pkg/history"
	"github.com/ilkoid/partsdesk/pkg/importjob"
	"github.com/ilkoid/partsdesk/pkg/query"
	"github.com/ilkoid/partsdesk/pkg/upload"
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
	flag.Parse()

	// 0. Инициализируем логгер (stdout занят Bubble Tea)
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	defer utils.Close()

	utils.Info("Application started")

	// 1. Конфигурация
	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Error("Failed to load config", "error", err, "path", *configPath)
		return err
	}
	utils.Info("Config loaded", "path", *configPath, "base_url", cfg.API.BaseURL)

	// 2. API клиент (session cookie, retry, rate limit)
	apiClient, err := api.NewFromConfig(cfg.API)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	// 3. Кэш списков — явная зависимость, не глобальное состояние (Rule 5)
	store := query.NewStore()

	// 4. Загрузчик файлов по режиму из конфига
	uploader, err := upload.NewFromConfig(cfg.Upload, cfg.ImageProcessing, apiClient)
	if err != nil {
		return fmt.Errorf("uploader: %w", err)
	}

	// 5. Локальный журнал действий
	var actionLog *history.Log
	if cfg.History.Path != "" {
		actionLog, err = history.Open(cfg.History.Path)
		if err != nil {
			// Без журнала работать можно, фиксируем в лог
			utils.Warn("History db unavailable", "error", err, "path", cfg.History.Path)
		} else {
			defer actionLog.Close()
		}
	}

	// 6. Шина фоновых событий: библиотеки отправляют, UI подписан
	emitter := events.NewChanEmitter(100)
	defer emitter.Close()

	imports := importjob.New(apiClient, store)
	imports.SetEmitter(emitter)

	saver := export.NewSaver(cfg.App.DownloadDir)
	saver.SetEmitter(emitter)

	deps := &ui.Deps{
		API:      apiClient,
		Store:    store,
		Imports:  imports,
		Uploader: upload.WithEvents(uploader, emitter),
		Saver:    saver,
		History:  actionLog,
		Events:   emitter.Subscribe(),
	}

	// 7. Запускаем Bubble Tea программу
	utils.Info("Starting TUI")

	p := tea.NewProgram(
		ui.InitialModel(deps, cfg.App.PageLimit),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		utils.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	utils.Info("Application exited normally")
	return nil
}
