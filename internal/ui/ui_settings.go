package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect      *widget.Select
	modeSelect      *widget.Select
	urlEntry        *widget.Entry
	userEntry       *widget.Entry
	passEntry       *widget.Entry
	pathEntry       *widget.Entry
	checkFunFont    *widget.Check
	checkBackground *widget.Check
	entryPort       *NumericalEntry
}

// themeModes lists the theme sources in the order shown in the selector.
var themeModes = []string{config.ThemeModeBuiltin, config.ThemeModeLocal, config.ThemeModeWeb}

// modeLabel translates a theme mode into its selector label.
func (app *MonthlyWidgetApp) modeLabel(mode string) string {
	switch mode {
	case config.ThemeModeLocal:
		return app.GetMsg(config.TKeyModeLocal)
	case config.ThemeModeWeb:
		return app.GetMsg(config.TKeyModeWeb)
	default:
		return app.GetMsg(config.TKeyModeBuiltin)
	}
}

// modeFromLabel maps a selector label back to its theme mode.
func (app *MonthlyWidgetApp) modeFromLabel(label string) string {
	for _, mode := range themeModes {
		if app.modeLabel(mode) == label {
			return mode
		}
	}
	return config.DefaultThemeMode
}

// validatePort checks the feed port field.
func (app *MonthlyWidgetApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// ShowSettingsWindow displays the configuration dialog.
func (app *MonthlyWidgetApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgWinFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- Theme source ---
	labels := make([]string, len(themeModes))
	for i, mode := range themeModes {
		labels[i] = app.modeLabel(mode)
	}
	sw.modeSelect = widget.NewSelect(labels, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefThemeURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))
	sw.pathEntry.PlaceHolder = config.PlaceholderPath

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	// --- Appearance ---
	sw.checkFunFont = widget.NewCheck(app.GetMsg(config.TKeyLblFunFont), nil)
	sw.checkFunFont.Checked = app.Preferences.Bool(config.PrefFunFont)

	sw.checkBackground = widget.NewCheck(app.GetMsg(config.TKeyLblBackground), nil)
	sw.checkBackground.Checked = app.showsBackground()

	appearanceCard := widget.NewCard(app.GetMsg(config.TKeyLblAppearance), "",
		container.NewVBox(sw.checkFunFont, sw.checkBackground))

	// --- General ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.entryPort = NewNumericalEntry(len(strconv.Itoa(config.MaxPort)))
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		sourceCard,
		appearanceCard,
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// buildSourceCard constructs the theme source selection UI.
func (app *MonthlyWidgetApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtYAML, config.ExtYML}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)

	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyVis := func(mode string) {
		webForm.Hide()
		localForm.Hide()
		switch mode {
		case config.ThemeModeWeb:
			webForm.Show()
		case config.ThemeModeLocal:
			localForm.Show()
		}
	}

	current := app.Preferences.StringWithFallback(config.PrefThemeMode, config.DefaultThemeMode)
	sw.modeSelect.SetSelected(app.modeLabel(current))
	applyVis(current)

	sw.modeSelect.OnChanged = func(label string) {
		applyVis(app.modeFromLabel(label))
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the form and schedules a regeneration.
func (app *MonthlyWidgetApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	mode := app.modeFromLabel(sw.modeSelect.Selected)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefThemeMode, mode)
	app.Preferences.SetString(config.PrefThemeURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)
	app.Preferences.SetBool(config.PrefFunFont, sw.checkFunFont.Checked)
	app.Preferences.SetBool(config.PrefShowBackground, sw.checkBackground.Checked)

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	if mode == config.ThemeModeWeb && sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.RequestRefresh(config.ReasonPreferences)
}
