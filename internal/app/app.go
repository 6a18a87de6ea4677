// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"keyclip/internal/autostart"
	"keyclip/internal/clipboard"
	"keyclip/internal/clipper"
	"keyclip/internal/config"
	"keyclip/internal/dialog"
	"keyclip/internal/hotkey"
	"keyclip/internal/i18n"
	"keyclip/internal/notify"
	"keyclip/internal/sound"
	"keyclip/internal/tray"
)

// autostartManager - автозапуск при входе в систему.
type autostartManager interface {
	Enable() error
	Disable() error
	IsEnabled() bool
}

// Options - параметры запуска приложения.
type Options struct {
	Env     config.Env
	Version string
	Log     *zap.SugaredLogger
}

// App представляет главное приложение.
type App struct {
	log       *zap.SugaredLogger
	store     *config.Store
	registrar *hotkey.Registrar
	clipper   *clipper.Clipper
	tray      *tray.Tray
	notifier  *notify.Notifier
	autostart autostartManager

	// selectHotkey открывает диалог выбора комбинации
	selectHotkey func(config.Binding) (config.ModifiersInput, string, error)
	showError    func(title, message string)

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New создаёт приложение. Ошибка означает, что хранилище настроек
// нельзя открыть или дописать значения по умолчанию.
func New(opts Options) (*App, error) {
	log := opts.Log

	if lang, ok := i18n.ParseLanguage(opts.Env.Language); ok {
		i18n.SetLanguage(lang)
	} else if opts.Env.Language != "" {
		log.Warnw("Неизвестный язык интерфейса, используется английский", "lang", opts.Env.Language)
	}

	path := opts.Env.StorePath
	if path == "" {
		var err error
		if path, err = config.DefaultStorePath(); err != nil {
			return nil, err
		}
	}
	store, err := config.Open(path)
	if err != nil {
		return nil, fmt.Errorf("открытие настроек: %w", err)
	}
	settings, err := config.LoadSettings(store, log)
	if err != nil {
		return nil, fmt.Errorf("загрузка настроек: %w", err)
	}
	log.Infow("Настройки загружены",
		"path", store.Path(),
		"hotkey", settings.Binding.String(),
		"play_sound", settings.PlaySound,
		"autostart", settings.AutostartEnabled,
	)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		log:          log,
		store:        store,
		registrar:    hotkey.New(log.Named("hotkey")),
		notifier:     notify.New(log, opts.Env.Notifications),
		selectHotkey: dialog.SelectHotkey,
		showError:    dialog.ShowError,
		ctx:          ctx,
		cancel:       cancel,
	}

	if exe, err := autostart.Executable(); err != nil {
		log.Warnw("Автозапуск недоступен", "error", err)
	} else if m, err := autostart.New(exe); err != nil {
		log.Warnw("Автозапуск недоступен", "error", err)
	} else {
		app.autostart = m
	}

	// Создаём системный трей с обработчиками
	app.tray = tray.New(tray.Options{
		Version: opts.Version,
		Log:     log.Named("tray"),
		Handlers: tray.Handlers{
			OnChangeHotkey:    func() { go app.changeHotkey() },
			OnToggleAutostart: app.toggleAutostart,
			OnTogglePlaySound: app.togglePlaySound,
			OnQuit:            app.Close,
		},
		Autostart: settings.AutostartEnabled,
		PlaySound: settings.PlaySound,
	})

	app.clipper = clipper.New(clipper.Options{
		Registrar: app.registrar,
		Store:     store,
		Clipboard: clipboard.New(log.Named("clipboard")),
		Sound:     sound.New(log.Named("sound"), opts.Env.SoundPath, 0),
		OnLabel:   app.tray.SetHotkeyLabel,
		Binding:   settings.Binding,
		PlaySound: settings.PlaySound,
		Log:       log.Named("clipper"),
	})

	return app, nil
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() {
	a.tray.Run(a.start)
}

// start вызывается после инициализации трея.
func (a *App) start() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.dispatch()
	}()

	// Ошибка регистрации не фатальна: комбинацию можно сменить из меню
	if err := a.clipper.Start(); err != nil {
		a.log.Errorw("Ошибка регистрации горячей клавиши", "error", err)
		a.notifier.Error(i18n.T("error_hotkey_register") + ": " + a.clipper.Binding().String())
	} else {
		a.notifier.Ready()
	}

	a.syncAutostart()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.store.Watch(a.ctx, a.log.Named("store"), a.onStoreChange); err != nil {
			a.log.Warnw("Отслеживание файла настроек недоступно", "error", err)
		}
	}()

	a.log.Infow("Приложение запущено", "hotkey", a.clipper.Binding().String())
}

// dispatch передаёт события горячей клавиши в clipper.
func (a *App) dispatch() {
	for ev := range a.registrar.Events() {
		a.clipper.HandleEvent(ev)
	}
}

func (a *App) changeHotkey() {
	if !a.clipper.BeginChange() {
		a.log.Debugw("Смена горячей клавиши уже идёт")
		return
	}

	in, code, err := a.selectHotkey(a.clipper.Binding())
	if err != nil {
		a.clipper.CancelChange()
		switch {
		case errors.Is(err, zenity.ErrCanceled):
		case errors.Is(err, dialog.ErrNoModifier):
			a.showError(i18n.T("error_hotkey_change"), i18n.T("error_no_modifier"))
		default:
			a.log.Errorw("Ошибка диалога выбора горячей клавиши", "error", err)
		}
		return
	}

	if err := a.clipper.SetHotkey(in, code); err != nil {
		a.log.Errorw("Ошибка смены горячей клавиши", "error", err)
		a.notifier.Error(i18n.T("error_hotkey_change"))
		a.showError(i18n.T("error_hotkey_change"), err.Error())
	}
}

// toggleAutostart переключает автозапуск и возвращает новое состояние.
// Ошибка менеджера автозапуска не мешает сохранить флаг.
func (a *App) toggleAutostart() bool {
	enabled, ok := a.store.Bool(config.KeyAutostart)
	if !ok {
		enabled = config.DefaultAutostart
	}
	enabled = !enabled

	if a.autostart != nil {
		var err error
		if enabled {
			err = a.autostart.Enable()
		} else {
			err = a.autostart.Disable()
		}
		if err != nil {
			a.log.Warnw("Ошибка изменения автозапуска", "enabled", enabled, "error", err)
			a.notifier.Error(i18n.T("error_autostart"))
		}
	}

	if err := a.store.Set(config.KeyAutostart, enabled); err != nil {
		a.log.Warnw("Не удалось сохранить настройку автозапуска", "error", err)
	}
	return enabled
}

func (a *App) togglePlaySound() bool {
	enabled, _ := a.clipper.TogglePlaySound()
	return enabled
}

// syncAutostart обновляет запись автозапуска, если он включён,
// чтобы путь к исполняемому файлу оставался актуальным.
func (a *App) syncAutostart() {
	if a.autostart == nil {
		return
	}
	enabled, _ := a.store.Bool(config.KeyAutostart)
	if !enabled {
		return
	}
	if err := a.autostart.Enable(); err != nil {
		a.log.Warnw("Не удалось обновить автозапуск", "error", err)
	}
}

// onStoreChange применяет изменения файла настроек, сделанные снаружи.
func (a *App) onStoreChange() {
	if a.clipper.Recording() {
		a.log.Debugw("Идёт смена горячей клавиши, внешнее изменение пропущено")
		return
	}

	if b := config.LoadBinding(a.store, a.log); b != a.clipper.Binding() {
		applied, err := a.clipper.CommitIfIdle(b)
		if err != nil {
			a.log.Errorw("Не удалось применить горячую клавишу из файла настроек", "hotkey", b.String(), "error", err)
			a.notifier.Error(i18n.T("error_hotkey_register") + ": " + b.String())
		} else if !applied {
			a.log.Debugw("Идёт смена горячей клавиши, внешнее изменение пропущено")
			return
		}
	}

	if v, ok := a.store.Bool(config.KeyPlaySound); ok && v != a.clipper.PlaySound() {
		if err := a.clipper.SetPlaySound(v); err != nil {
			a.log.Warnw("Ошибка применения настройки звука", "error", err)
		}
		a.tray.SetPlaySoundChecked(v)
	}

	if v, ok := a.store.Bool(config.KeyAutostart); ok {
		a.tray.SetAutostartChecked(v)
	}
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.cancel()
		a.registrar.Close()
		a.wg.Wait()
		a.log.Infow("Приложение остановлено")
	})
}
