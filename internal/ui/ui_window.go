package ui

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
)

// mainViews holds the widgets refreshed after every change.
type mainViews struct {
	state viewState
	rows  []sceneRow

	personEntry *widget.Entry
	vcardEntry  *widget.Entry
	visible     *widget.CheckGroup

	eventPerson *widget.Select
	year        *NumericalEntry
	month       *NumericalEntry
	day         *NumericalEntry
	start       *NumericalEntry
	end         *NumericalEntry
	title       *widget.Entry
	place       *widget.Entry
	note        *widget.Entry

	events *widget.List

	yearSelect  *widget.Select
	monthSelect *widget.Select
	weekSelect  *widget.Select
	conflicts   *widget.Label
	notice      *widget.Label
	scene       *widget.List
}

type sceneRow struct {
	text     string
	conflict bool
}

// ShowMainWindow opens the schedule window, or focuses it if already open.
func (app *ScheduleApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUI)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	w.SetMaster()
	w.Resize(fyne.NewSize(
		float32(app.Preferences.IntWithFallback(config.PrefWindowW, config.MainWindowWidth)),
		float32(app.Preferences.IntWithFallback(config.PrefWindowH, config.MainWindowHeight)),
	))
	w.SetContent(app.buildContent())
	w.SetOnClosed(func() {
		size := w.Canvas().Size()
		app.Preferences.SetInt(config.PrefWindowW, int(size.Width))
		app.Preferences.SetInt(config.PrefWindowH, int(size.Height))
		app.Window = nil
		app.views = nil
	})
	w.Show()
}

func (app *ScheduleApp) buildContent() fyne.CanvasObject {
	app.rerender()
	v := &mainViews{}
	app.views = v

	forms := container.NewVBox(
		app.buildPeopleCard(v),
		app.buildEventCard(v),
		app.buildLanguageForm(),
	)

	v.conflicts = widget.NewLabel("")
	v.conflicts.TextStyle = fyne.TextStyle{Bold: true}
	v.notice = widget.NewLabel("")
	v.notice.Wrapping = fyne.TextWrapWord

	lists := container.NewVSplit(
		widget.NewCard(app.GetMsg(config.TKeyLblEvents), "", app.buildEventList(v)),
		widget.NewCard(app.GetMsg(config.TKeyLblScene), "",
			container.NewBorder(container.NewVBox(v.conflicts, v.notice), nil, nil, nil, app.buildSceneList(v))),
	)

	split := container.NewHSplit(
		container.NewVScroll(forms),
		container.NewBorder(app.buildViewCard(v), nil, nil, nil, lists),
	)
	split.Offset = config.SplitOffset

	app.syncViews()
	return split
}

func (app *ScheduleApp) buildPeopleCard(v *mainViews) fyne.CanvasObject {
	v.personEntry = widget.NewEntry()
	v.personEntry.SetPlaceHolder(config.PlaceholderPerson)
	v.personEntry.OnSubmitted = func(string) { app.onAddPerson() }
	addBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAddPerson), theme.ContentAddIcon(), app.onAddPerson)

	v.vcardEntry = widget.NewEntry()
	v.vcardEntry.SetPlaceHolder(config.PlaceholderVCard)
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), app.onBrowse)
	importBtn := widget.NewButton(app.GetMsg(config.TKeyBtnImportVCard), app.onImport)

	v.visible = widget.NewCheckGroup(nil, func(selected []string) {
		app.SetVisible(selected)
		app.syncViews()
	})
	v.visible.Horizontal = true

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblNewPerson),
			container.NewBorder(nil, nil, nil, addBtn, v.personEntry)),
	)

	return widget.NewCard(app.GetMsg(config.TKeyLblPeople), "", container.NewVBox(
		form,
		container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, importBtn), v.vcardEntry),
		widget.NewLabel(app.GetMsg(config.TKeyLblVisible)),
		v.visible,
	))
}

func (app *ScheduleApp) buildEventCard(v *mainViews) fyne.CanvasObject {
	tr := app.Translator
	v.eventPerson = widget.NewSelect(nil, nil)
	v.year = NewNumericalEntry(config.MinYear, config.MaxYear, tr)
	v.month = NewNumericalEntry(1, 12, tr)
	v.day = NewNumericalEntry(1, 31, tr)
	v.start = NewNumericalEntry(config.MinStartHour, config.MaxStartHour, tr)
	v.end = NewNumericalEntry(config.MinEndHour, config.MaxEndHour, tr)

	today := app.Clock.Now()
	v.year.SetValue(today.Year())
	v.month.SetValue(int(today.Month()))
	v.day.SetValue(today.Day())
	v.start.SetValue(config.DefaultStartHour)
	v.end.SetValue(config.DefaultEndHour)

	v.title = widget.NewEntry()
	v.title.SetText(config.DefaultEventTitle)
	v.place = widget.NewEntry()
	v.place.SetText(config.DefaultEventPlace)
	v.note = widget.NewMultiLineEntry()

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblPerson), v.eventPerson),
		widget.NewFormItem(app.GetMsg(config.TKeyLblYear), v.year),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), v.month),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDay), v.day),
		widget.NewFormItem(app.GetMsg(config.TKeyLblStart), v.start),
		widget.NewFormItem(app.GetMsg(config.TKeyLblEnd), v.end),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTitle), v.title),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPlace), v.place),
		widget.NewFormItem(app.GetMsg(config.TKeyLblNote), v.note),
	)

	addBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAddEvent), theme.ContentAddIcon(), app.onAddEvent)
	addBtn.Importance = widget.HighImportance

	return widget.NewCard(app.GetMsg(config.TKeyLblNewEvent), "", container.NewVBox(form, addBtn))
}

func (app *ScheduleApp) buildLanguageForm() fyne.CanvasObject {
	sel := widget.NewSelect(app.Translator.Languages(), nil)
	sel.Selected = app.Translator.Language()
	sel.OnChanged = func(lang string) {
		if lang != app.Translator.Language() {
			app.SetLanguage(lang)
		}
	}
	return widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sel))
}

func (app *ScheduleApp) buildViewCard(v *mainViews) fyne.CanvasObject {
	v.yearSelect = widget.NewSelect(nil, func(s string) {
		year, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		app.Select(engine.Selection{Year: year})
		app.syncViews()
	})
	v.monthSelect = widget.NewSelect(nil, func(s string) {
		month, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		app.Select(engine.Selection{Year: v.state.Scene.Selection.Year, Month: month})
		app.syncViews()
	})
	v.weekSelect = widget.NewSelect(nil, func(s string) {
		sel := v.state.Scene.Selection
		for _, b := range v.state.Scene.Buckets {
			if b.Label == s {
				sel.Week = b.Week
			}
		}
		app.Select(sel)
		app.syncViews()
	})

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblYear), v.yearSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), v.monthSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblWeek), v.weekSelect),
	)
	return widget.NewCard(app.GetMsg(config.TKeyLblView), "", form)
}

func (app *ScheduleApp) buildEventList(v *mainViews) fyne.CanvasObject {
	v.events = widget.NewList(
		func() int { return len(v.state.Events) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), nil),
				widget.NewLabel(config.ListPlaceholder))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(v.state.Events) {
				return
			}
			row := app.labels().EventRow(v.state.Events[id])
			for _, obj := range o.(*fyne.Container).Objects {
				switch w := obj.(type) {
				case *widget.Label:
					w.SetText(row)
				case *widget.Button:
					w.OnTapped = func() { app.onDelete(id) }
				}
			}
		},
	)
	return v.events
}

func (app *ScheduleApp) buildSceneList(v *mainViews) fyne.CanvasObject {
	v.scene = widget.NewList(
		func() int { return len(v.rows) },
		func() fyne.CanvasObject { return widget.NewLabel(config.ListPlaceholder) },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(v.rows) {
				return
			}
			label := o.(*widget.Label)
			label.Importance = widget.MediumImportance
			if v.rows[id].conflict {
				label.Importance = widget.DangerImportance
			}
			label.SetText(v.rows[id].text)
		},
	)
	return v.scene
}

// syncViews copies the session into the widgets. Must run on the UI goroutine.
func (app *ScheduleApp) syncViews() {
	v := app.views
	if v == nil {
		return
	}
	v.state = app.state()
	labels := app.labels()
	people := v.state.People
	sc := v.state.Scene

	v.visible.Options = people
	v.visible.Selected = v.state.Visible
	v.visible.Refresh()

	v.eventPerson.Options = people
	if !slices.Contains(people, v.eventPerson.Selected) {
		v.eventPerson.Selected = ""
		if len(people) > 0 {
			v.eventPerson.Selected = people[0]
		}
	}
	v.eventPerson.Refresh()

	v.rows = v.rows[:0]
	for _, e := range sc.Events {
		v.rows = append(v.rows, sceneRow{text: labels.EventRow(e)})
	}
	for _, o := range sc.Overlaps {
		v.rows = append(v.rows, sceneRow{text: labels.OverlapRow(o), conflict: true})
	}

	v.yearSelect.Options = itoaAll(sc.Years)
	v.monthSelect.Options = itoaAll(sc.Months)
	weeks := make([]string, 0, len(sc.Buckets))
	for _, b := range sc.Buckets {
		weeks = append(weeks, b.Label)
	}
	v.weekSelect.Options = weeks
	if sc.Empty {
		v.yearSelect.Selected, v.monthSelect.Selected, v.weekSelect.Selected = "", "", ""
	} else {
		v.yearSelect.Selected = strconv.Itoa(sc.Selection.Year)
		v.monthSelect.Selected = strconv.Itoa(sc.Selection.Month)
		v.weekSelect.Selected = sc.Bucket.Label
	}
	v.yearSelect.Refresh()
	v.monthSelect.Refresh()
	v.weekSelect.Refresh()

	v.conflicts.SetText(labels.Conflicts(len(sc.Overlaps)))
	v.notice.SetText(sc.Notice)
	v.events.Refresh()
	v.scene.Refresh()
}

func (app *ScheduleApp) onAddPerson() {
	v := app.views
	if _, err := app.AddPerson(v.personEntry.Text); err != nil {
		app.showError(err)
		return
	}
	v.personEntry.SetText("")
	app.syncViews()
}

func (app *ScheduleApp) onAddEvent() {
	in, err := app.eventInput()
	if err != nil {
		app.showError(err)
		return
	}
	if _, err := app.AddEvent(in); err != nil {
		app.showError(err)
		return
	}
	app.syncViews()
}

// eventInput reads the add-event form, reporting the first invalid number.
func (app *ScheduleApp) eventInput() (engine.EventInput, error) {
	v := app.views
	in := engine.EventInput{
		Person: v.eventPerson.Selected,
		Title:  v.title.Text,
		Place:  v.place.Text,
		Note:   v.note.Text,
	}
	for _, f := range []struct {
		key   string
		entry *NumericalEntry
		dst   *int
	}{
		{config.TKeyLblYear, v.year, &in.Year},
		{config.TKeyLblMonth, v.month, &in.Month},
		{config.TKeyLblDay, v.day, &in.Day},
		{config.TKeyLblStart, v.start, &in.StartHour},
		{config.TKeyLblEnd, v.end, &in.EndHour},
	} {
		n, err := f.entry.Value()
		if err != nil {
			return engine.EventInput{}, fmt.Errorf("%s: %w", app.GetMsg(f.key), err)
		}
		*f.dst = n
	}
	return in, nil
}

func (app *ScheduleApp) onDelete(index int) {
	if err := app.DeleteEvent(index); err != nil {
		app.showError(err)
		return
	}
	app.syncViews()
}

func (app *ScheduleApp) onBrowse() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer func() { _ = r.Close() }()
		if app.views != nil {
			app.views.vcardEntry.SetText(r.URI().Path())
		}
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// onImport downloads in the background and refreshes the window when done.
func (app *ScheduleApp) onImport() {
	location := strings.TrimSpace(app.views.vcardEntry.Text)
	if location == "" {
		return
	}
	go func() {
		n, err := app.ImportPeople(location)
		fyne.Do(func() {
			if err != nil {
				app.showError(err)
				return
			}
			app.App.SendNotification(fyne.NewNotification(config.AppName,
				app.Translator.Template(config.TKeyNotifImported, map[string]any{"Count": n})))
			app.syncViews()
		})
	}()
}

func (app *ScheduleApp) showError(err error) {
	slog.Warn(config.MsgInputRejected,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyError, err)
	if app.Window == nil {
		return
	}
	dialog.ShowInformation(app.GetMsg(config.TKeyTitleInputError), err.Error(), app.Window)
}

func itoaAll(values []int) []string {
	out := make([]string, len(values))
	for i, n := range values {
		out[i] = strconv.Itoa(n)
	}
	return out
}
