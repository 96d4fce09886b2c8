//go:build fyne

package desktop

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/pkg/types"
)

// showForm opens a modal form. A rejected submit shows the error and then
// reopens the same widgets, so the entered values survive.
func (w *window) showForm(title string, items []*widget.FormItem, submit func() error) {
	d := dialog.NewForm(title, "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := submit(); err != nil {
			if !catalog.IsUserError(err) {
				w.showError(err)
				return
			}
			e := dialog.NewError(err, w.win)
			e.SetOnClosed(func() { w.showForm(title, items, submit) })
			e.Show()
			return
		}
		w.refreshAll()
	}, w.win)
	d.Resize(fyne.NewSize(560, 0))
	d.Show()
}

func formTitle(e catalog.Entity, id int64) string {
	noun := e.Title()[:len(e.Title())-1]
	if id == 0 {
		return "Add " + noun
	}
	return fmt.Sprintf("Edit %s %d", noun, id)
}

// openForm opens the add (id 0) or edit dialog of an entity.
func (w *window) openForm(e catalog.Entity, id int64) {
	var err error
	switch e {
	case catalog.EntityPublishers:
		err = w.publisherForm(id)
	case catalog.EntityPlayers:
		err = w.playerForm(id)
	case catalog.EntitySystems:
		var f catalog.SystemForm
		if id != 0 {
			if f, err = w.opts.Service.LoadSystemForm(w.ctx, id); err != nil {
				break
			}
		}
		err = w.systemForm(formTitle(e, id), id, f)
	case catalog.EntitySessions:
		err = w.sessionForm(id)
	}
	if err != nil {
		w.showError(err)
	}
}

func entry(text string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(text)
	return e
}

func selectOf(options []string, current string) *widget.Select {
	s := widget.NewSelect(options, nil)
	if current != "" {
		s.SetSelected(current)
	}
	return s
}

func check(label string, v bool) *widget.Check {
	c := widget.NewCheck(label, nil)
	c.SetChecked(v)
	return c
}

func (w *window) publisherForm(id int64) error {
	var f catalog.PublisherForm
	if id != 0 {
		var err error
		if f, err = w.opts.Service.LoadPublisherForm(w.ctx, id); err != nil {
			return err
		}
	}
	name, website, country := entry(f.Name), entry(f.Website), entry(f.Country)
	items := []*widget.FormItem{
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Website", website),
		widget.NewFormItem("Country", country),
	}
	w.showForm(formTitle(catalog.EntityPublishers, id), items, func() error {
		_, err := w.opts.Service.SavePublisher(w.ctx, id, catalog.PublisherForm{
			Name: name.Text, Website: website.Text, Country: country.Text,
		})
		return err
	})
	return nil
}

func (w *window) playerForm(id int64) error {
	f := catalog.PlayerForm{Gender: string(types.GenderWoman)}
	if id != 0 {
		var err error
		if f, err = w.opts.Service.LoadPlayerForm(w.ctx, id); err != nil {
			return err
		}
	}
	nick, full, social := entry(f.Nickname), entry(f.FullName), entry(f.Social)
	gender := selectOf(Strings(types.Genders), f.Gender)
	primary, notable := check("Primary user", f.Primary), check("Notable", f.Notable)
	primary.OnChanged = func(v bool) {
		if v {
			notable.SetChecked(false)
		}
	}
	notable.OnChanged = func(v bool) {
		if v {
			primary.SetChecked(false)
		}
	}
	items := []*widget.FormItem{
		widget.NewFormItem("Nickname", nick),
		widget.NewFormItem("Full name", full),
		widget.NewFormItem("Gender", gender),
		widget.NewFormItem("Social", social),
		widget.NewFormItem("Status", container.NewHBox(primary, notable)),
	}
	w.showForm(formTitle(catalog.EntityPlayers, id), items, func() error {
		form := catalog.PlayerForm{Nickname: nick.Text, FullName: full.Text, Gender: gender.Selected, Social: social.Text}
		form.SetPrimary(primary.Checked)
		form.SetNotable(notable.Checked)
		_, err := w.opts.Service.SavePlayer(w.ctx, id, form)
		return err
	})
	return nil
}

func (w *window) systemForm(title string, id int64, f catalog.SystemForm) error {
	cores, err := w.opts.Service.CoreRulebookOptions(w.ctx)
	if err != nil {
		return err
	}
	pubs, err := w.opts.Service.PublisherOptions(w.ctx)
	if err != nil {
		return err
	}
	parents, publishers := NewPicker(cores, true), NewPicker(pubs, true)

	name := entry(f.Name)
	kind := selectOf(Strings(types.SystemKinds), f.Kind)
	if f.Kind == "" {
		kind.SetSelected(string(types.KindCoreRulebook))
	}
	parent := selectOf(parents.Labels, parents.LabelFor(f.ParentID))
	suppTypes := widget.NewCheckGroup(Strings(types.SupplementTypes), nil)
	suppTypes.SetSelected(f.SupplementTypes)
	publisher := selectOf(publishers.Labels, publishers.LabelFor(f.PublisherID))
	physical, pdf := check("Physical", f.Physical), check("PDF", f.PDF)
	vtt := widget.NewCheckGroup(types.VTTPlatforms, nil)
	vtt.SetSelected(f.VTT)
	language := widget.NewSelectEntry(types.Languages)
	language.SetText(f.Language)
	play := selectOf(Strings(types.PlayStatuses), f.PlayStatus)
	collection := selectOf(Strings(types.CollectionStatuses), f.CollectionStatus)
	buyPrice, buyCur := entry(f.PurchasePrice), selectOf(types.Currencies, f.PurchaseCurrency)
	salePrice, saleCur := entry(f.SalePrice), selectOf(types.Currencies, f.SaleCurrency)

	syncKind := func(k string) {
		if k == string(types.KindSupplement) {
			parent.Enable()
			suppTypes.Enable()
			return
		}
		parent.Disable()
		suppTypes.Disable()
	}
	kind.OnChanged = syncKind
	syncKind(kind.Selected)

	items := []*widget.FormItem{
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Kind", kind),
		widget.NewFormItem("Core rulebook", parent),
		widget.NewFormItem("Supplement types", suppTypes),
		widget.NewFormItem("Publisher", publisher),
		widget.NewFormItem("Format", container.NewHBox(physical, pdf)),
		widget.NewFormItem("VTT", vtt),
		widget.NewFormItem("Language", language),
		widget.NewFormItem("Play status", play),
		widget.NewFormItem("Collection", collection),
		widget.NewFormItem("Purchase price", container.NewGridWithColumns(2, buyPrice, buyCur)),
		widget.NewFormItem("Sale price", container.NewGridWithColumns(2, salePrice, saleCur)),
	}
	w.showForm(title, items, func() error {
		_, err := w.opts.Service.SaveSystem(w.ctx, id, catalog.SystemForm{
			Name:             name.Text,
			Kind:             kind.Selected,
			ParentID:         parents.IDString(parent.Selected),
			SupplementTypes:  suppTypes.Selected,
			PublisherID:      publishers.IDString(publisher.Selected),
			Physical:         physical.Checked,
			PDF:              pdf.Checked,
			VTT:              vtt.Selected,
			Language:         language.Text,
			PlayStatus:       play.Selected,
			CollectionStatus: collection.Selected,
			PurchasePrice:    buyPrice.Text,
			PurchaseCurrency: buyCur.Selected,
			SalePrice:        salePrice.Text,
			SaleCurrency:     saleCur.Selected,
		})
		return err
	})
	return nil
}

func (w *window) sessionForm(id int64) error {
	svc := w.opts.Service
	if err := svc.SessionFormReady(w.ctx); err != nil {
		return err
	}
	in := catalog.SessionInput{PlayerCount: catalog.DefaultPlayerCount}
	flow := catalog.FlowAdd
	if id != 0 {
		var err error
		if in, err = svc.LoadSessionInput(w.ctx, id); err != nil {
			return err
		}
		flow = catalog.FlowEdit
	}
	sysOpts, err := svc.CoreRulebookOptions(w.ctx)
	if err != nil {
		return err
	}
	playerOpts, err := svc.PlayerOptions(w.ctx)
	if err != nil {
		return err
	}
	systems, gms, players := NewPicker(sysOpts, true), NewPicker(playerOpts, true), NewPicker(playerOpts, false)

	date := entry(in.Date)
	date.SetPlaceHolder("YYYY-MM-DD")
	system := selectOf(systems.Labels, systems.Label(in.SystemID))
	count := entry(in.PlayerCount)
	gm := selectOf(gms.Labels, gms.Label(in.GMID))
	var chosen []string
	for _, pid := range in.PlayerIDs {
		chosen = append(chosen, players.Label(&pid))
	}
	who := widget.NewCheckGroup(players.Labels, nil)
	who.SetSelected(chosen)
	campaign, oneShot := check("Campaign", in.Campaign), check("One-shot", in.OneShot)
	campaignTitle, adventureTitle := entry(in.CampaignTitle), entry(in.AdventureTitle)

	items := []*widget.FormItem{
		widget.NewFormItem("Date", date),
		widget.NewFormItem("System", system),
		widget.NewFormItem("Players", count),
		widget.NewFormItem("Game master", gm),
		widget.NewFormItem("Who played", container.NewVScroll(who)),
		widget.NewFormItem("Kind", container.NewHBox(campaign, oneShot)),
		widget.NewFormItem("Campaign title", campaignTitle),
		widget.NewFormItem("Adventure title", adventureTitle),
	}
	w.showForm(formTitle(catalog.EntitySessions, id), items, func() error {
		next := catalog.SessionInput{
			Date:           date.Text,
			SystemID:       systems.ID(system.Selected),
			PlayerCount:    count.Text,
			GMID:           gms.ID(gm.Selected),
			Campaign:       campaign.Checked,
			OneShot:        oneShot.Checked,
			CampaignTitle:  campaignTitle.Text,
			AdventureTitle: adventureTitle.Text,
		}
		for _, label := range who.Selected {
			if pid := players.ID(label); pid != nil {
				next.PlayerIDs = append(next.PlayerIDs, *pid)
			}
		}
		_, err := svc.SaveSession(w.ctx, id, next, flow)
		return err
	})
	return nil
}

// confirmDelete asks before deleting. Deleting a core rulebook names the
// number of supplements that go with it.
func (w *window) confirmDelete(e catalog.Entity, id int64) {
	svc := w.opts.Service
	msg := fmt.Sprintf("Delete %s %d?", e.Title()[:len(e.Title())-1], id)
	if e == catalog.EntitySystems {
		n, err := svc.SupplementCount(w.ctx, id)
		if err != nil {
			w.showError(err)
			return
		}
		if n > 0 {
			msg = fmt.Sprintf("System %d has %d supplements. Deleting it deletes them too. Continue?", id, n)
		}
	}
	dialog.ShowConfirm("Delete", msg, func(ok bool) {
		if !ok {
			return
		}
		var err error
		switch e {
		case catalog.EntityPublishers:
			err = svc.DeletePublisher(w.ctx, id)
		case catalog.EntityPlayers:
			err = svc.DeletePlayer(w.ctx, id)
		case catalog.EntitySystems:
			_, err = svc.DeleteSystem(w.ctx, id)
		case catalog.EntitySessions:
			err = svc.DeleteSession(w.ctx, id)
		}
		if err != nil {
			w.showError(err)
			return
		}
		w.refreshAll()
	}, w.win)
}

// showSupplements lists the supplements of a core rulebook in their own
// window, with a button that adds one more.
func (w *window) showSupplements(id int64) {
	rows, err := w.opts.Service.SupplementsOf(w.ctx, id)
	if err != nil {
		w.showError(err)
		return
	}
	list := widget.NewList(
		func() int { return len(rows) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			r := rows[i]
			o.(*widget.Label).SetText(r.BaseName + "  (" + r.SupplementTypes + ")")
		},
	)
	sub := w.app.NewWindow("Supplements of " + strconv.FormatInt(id, 10))
	add := widget.NewButton("Add supplement to this core rulebook", func() {
		if err := w.systemForm("Add Supplement", 0, catalog.SupplementFormFor(id)); err != nil {
			w.showError(err)
		}
		sub.Close()
	})
	add.Importance = widget.HighImportance
	sub.SetContent(container.NewBorder(nil, add, nil, nil, list))
	sub.Resize(fyne.NewSize(520, 400))
	sub.Show()
}
