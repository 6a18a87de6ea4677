// keyclip - утилита в системном трее: по глобальной горячей клавише
// генерирует UUID v4 и кладёт его в буфер обмена.
//
// По умолчанию комбинация Cmd/Win+Shift+K.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"keyclip/internal/app"
	"keyclip/internal/config"
	"keyclip/internal/hotkey"
	"keyclip/internal/logging"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options - параметры командной строки поверх переменных окружения.
type options struct {
	env config.Env
}

func newRootCmd() *cobra.Command {
	opts := &options{env: config.DefaultEnv()}

	cmd := &cobra.Command{
		Use:          "keyclip",
		Short:        "UUID v4 в буфер обмена по глобальной горячей клавише",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(opts.env)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.env.StorePath, "store", "", "путь к файлу настроек (KEYCLIP_STORE_PATH)")
	f.StringVar(&opts.env.LogLevel, "log-level", opts.env.LogLevel, "уровень логирования: debug, info, warn, error (KEYCLIP_LOG_LEVEL)")
	f.BoolVar(&opts.env.Debug, "debug", false, "режим отладки (KEYCLIP_DEBUG)")
	cmd.Flags().StringVar(&opts.env.SoundPath, "sound", "", "wav или mp3 файл звука копирования (KEYCLIP_SOUND_PATH)")

	cmd.AddCommand(
		newSettingsCmd(opts),
		newResetCmd(opts),
		newUUIDCmd(),
	)
	return cmd
}

// load читает окружение и применяет явно заданные флаги поверх него.
func (o *options) load(cmd *cobra.Command) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		env.StorePath = o.env.StorePath
	}
	if flags.Changed("log-level") {
		env.LogLevel = o.env.LogLevel
	}
	if flags.Changed("debug") {
		env.Debug = o.env.Debug
	}
	if flags.Lookup("sound") != nil && flags.Changed("sound") {
		env.SoundPath = o.env.SoundPath
	}
	o.env = env
	return nil
}

func newLogger(env config.Env) (*zap.Logger, error) {
	return logging.New(env.LogLevel, env.Debug)
}

func runApp(env config.Env) error {
	logger, err := newLogger(env)
	if err != nil {
		return err
	}
	log := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	log.Infow("keyclip запускается", "version", Version)

	// Трей и горячие клавиши требуют главного потока (macOS)
	var runErr error
	hotkey.RunOnMainThread(func() {
		application, err := app.New(app.Options{
			Env:     env,
			Version: Version,
			Log:     log,
		})
		if err != nil {
			log.Errorw("Ошибка инициализации", "error", err)
			runErr = err
			return
		}
		defer application.Close()

		application.Run()
	})
	return runErr
}
