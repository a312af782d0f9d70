package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/certmint/internal/common"
	"github.com/dmitrijs2005/certmint/internal/models"
	"github.com/dmitrijs2005/certmint/internal/notify"
)

const displayTimeLayout = "02.01.2006 15:04"

// resolveID prompts for a certificate id. When a certificate is selected via
// "show", pressing Enter reuses the selection.
func (a *App) resolveID(prompt string) (string, error) {
	p := prompt
	if a.selectedID != "" {
		p = fmt.Sprintf("%s (Enter for %s)", prompt, shortID(a.selectedID))
	}
	id, err := GetSimpleText(a.reader, p, a.out)
	if err != nil {
		return "", err
	}
	if id == "" {
		if a.selectedID != "" {
			return a.selectedID, nil
		}
		return "", errors.New("certificate id is required")
	}
	return id, nil
}

// Add collects a title and a body and creates a new certificate.
func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter certificate text (double Enter to finish):", a.out)
	if err != nil {
		return err
	}

	cert, err := a.certs.Create(ctx, title, content)
	if err != nil {
		a.notifier.Notify(err.Error(), notify.SeverityError)
		return err
	}
	a.notifier.Notify(fmt.Sprintf("Certificate %s created", cert.ID), notify.SeveritySuccess)
	return nil
}

// Edit replaces the title and body of an existing certificate. Pressing Enter
// on either prompt keeps the current value.
func (a *App) Edit(ctx context.Context) error {
	id, err := a.resolveID("Enter certificate id to edit")
	if err != nil {
		return err
	}

	cert, err := a.certs.Get(ctx, id)
	if err != nil {
		a.notifier.Notify(err.Error(), notify.SeverityError)
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Enter new title (Enter to keep %q)", cert.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = cert.Title
	}

	content, err := GetMultiline(a.reader, "Enter new text (double Enter to keep current):", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = cert.Content
	}

	updated, err := a.certs.Update(ctx, id, title, content)
	if err != nil {
		a.notifier.Notify(err.Error(), notify.SeverityError)
		return err
	}
	a.notifier.Notify(fmt.Sprintf("Certificate %s updated", updated.ID), notify.SeveritySuccess)
	return nil
}

// Delete removes a certificate after an explicit confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := a.resolveID("Enter certificate id to delete")
	if err != nil {
		return err
	}

	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete certificate %s? [y/N]", shortID(id)), a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := a.certs.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			a.notifier.Notify("Certificate not found", notify.SeverityError)
		} else {
			a.notifier.Notify(err.Error(), notify.SeverityError)
		}
		return err
	}
	a.notifier.Notify("Certificate deleted", notify.SeveritySuccess)
	return nil
}

// List prints a one-line overview per certificate, in insertion order.
func (a *App) List(ctx context.Context) error {
	certs := a.certs.List(ctx)
	if len(certs) == 0 {
		fmt.Fprintln(a.out, "No certificates yet. Use 'add' to create one.")
		return nil
	}
	for _, c := range certs {
		fmt.Fprintf(a.out, "%s  %-30s  %s: %s\n",
			c.ID, c.Title, c.TimestampLabel(), c.DisplayedAt().Format(displayTimeLayout))
	}
	return nil
}

// Show prints a certificate in full and makes it the current selection.
func (a *App) Show(ctx context.Context) error {
	id, err := a.resolveID("Enter certificate id to show")
	if err != nil {
		return err
	}

	cert, err := a.certs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			a.notifier.Notify("Certificate not found", notify.SeverityError)
		}
		return err
	}

	a.selectedID = cert.ID
	a.printCertificate(cert)
	return nil
}

func (a *App) printCertificate(cert models.Certificate) {
	fmt.Fprintf(a.out, "Id:      %s\n", cert.ID)
	fmt.Fprintf(a.out, "Title:   %s\n", cert.Title)
	fmt.Fprintf(a.out, "%s: %s\n", cert.TimestampLabel(), cert.DisplayedAt().Format(displayTimeLayout))
	fmt.Fprintln(a.out, cert.Content)
}
