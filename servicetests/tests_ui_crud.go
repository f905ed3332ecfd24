package servicetests

import (
	"fmt"
	"time"

	"github.com/stretchr/testify/assert"
)

// DoUICRUDTests create, edit and delete services through the web interface. The tests share one
// logged-in tab, which starts with an empty list, and each one starts with an empty form.
func DoUICRUDTests(t *T) {
	t.UseLoggedInPage()
	t.ClearServiceList()

	clearForm := func(t *T) {
		p := t.Page()
		t.mustUI(p.Navigate(t.Config().ServicesURL()))
		t.mustUI(p.FillForm("", "", ""))
	}

	t.Run("create", func(t *T) {
		clearForm(t)
		name := fmt.Sprintf("Тестовая услуга %d", time.Now().Unix())
		before, after := t.SubmitForm(name, "5", "150.50")
		assert.Greater(t, after, before, "service was not added to the list")
	})

	t.Run("edit", func(t *T) {
		clearForm(t)
		sel := t.Config().Selectors
		p := t.Page()
		t.SubmitForm(fmt.Sprintf("Для редактирования %d", time.Now().Unix()), "3", "200")

		edits, err := p.Count(sel.ServicesList.EditButton)
		t.mustUI(err)
		if edits == 0 {
			t.SkipWithReason("there is no service to edit")
		}
		t.mustUI(p.ClickLast(sel.ServicesList.EditButton))

		newName := fmt.Sprintf("Отредактировано %d", time.Now().Unix())
		t.mustUI(p.Fill(sel.ServiceForm.Name, newName))
		t.mustUI(p.Click(sel.ServiceForm.Submit))

		found, err := p.HasText(sel.ServicesList.Items, newName)
		t.mustUI(err)
		assert.True(t, found, "edited name %q is not in the list", newName)
	})

	t.Run("delete", func(t *T) {
		clearForm(t)
		sel := t.Config().Selectors.ServicesList
		p := t.Page()

		before := t.CountListItems()
		if before == 0 {
			t.SubmitForm(fmt.Sprintf("Для удаления %d", time.Now().Unix()), "1", "100")
			before = t.CountListItems()
		}
		if before == 0 {
			t.SkipWithReason("there is no service to delete")
		}

		t.mustUI(p.ClickAndConfirm(sel.DeleteButton))
		assert.Less(t, t.CountListItems(), before, "service was not removed from the list")
	})
}
