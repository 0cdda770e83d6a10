package translator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Belphemur/tlsubs/internal/site"
)

// Step names, in pipeline order.
const (
	StepLaunch          = "launch"
	StepNavigate        = "navigate"
	StepUpload          = "upload"
	StepDismissPopup    = "dismiss-popup"
	StepSelectLanguage  = "select-language"
	StepTranslate       = "translate"
	StepAwaitCompletion = "await-completion"
	StepDownload        = "download"
	StepSave            = "save"
)

// Step is one interaction of the pipeline. Run may assume every previous
// step succeeded and must honour ctx, which carries the step timeout.
type Step struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context, r *run) error
}

// steps builds the ordered pipeline.
func (t *Translator) steps() []Step {
	return []Step{
		{Name: StepLaunch, Timeout: t.timeouts.Launch, Run: t.launch},
		{Name: StepNavigate, Timeout: t.timeouts.Navigate, Run: t.navigate},
		{Name: StepUpload, Timeout: t.timeouts.Element, Run: upload},
		{Name: StepDismissPopup, Timeout: t.timeouts.Popup, Run: dismissPopup},
		{Name: StepSelectLanguage, Timeout: t.timeouts.Element, Run: selectLanguage},
		{Name: StepTranslate, Timeout: t.timeouts.Element, Run: triggerTranslate},
		{Name: StepAwaitCompletion, Timeout: t.timeouts.Translate, Run: awaitCompletion},
		{Name: StepDownload, Timeout: t.timeouts.Download, Run: download},
		{Name: StepSave, Timeout: t.timeouts.Element, Run: save},
	}
}

func (t *Translator) launch(ctx context.Context, r *run) error {
	session, err := t.launcher.Launch(ctx)
	if err != nil {
		return err
	}
	r.session = session
	return nil
}

func (t *Translator) navigate(ctx context.Context, r *run) error {
	return r.session.Navigate(ctx, t.siteURL)
}

func upload(ctx context.Context, r *run) error {
	path, err := filepath.Abs(r.job.InputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", r.job.InputPath, err)
	}
	return r.session.SetInputFile(ctx, site.FileInput, path)
}

// dismissPopup closes the promotional dialog shown after upload; it covers
// the language selector.
func dismissPopup(ctx context.Context, r *run) error {
	popup, err := r.session.WaitForSelector(ctx, site.Popup)
	if err != nil {
		return err
	}
	closeLink, err := popup.WaitForSelector(ctx, site.PopupClose)
	if err != nil {
		return err
	}
	return closeLink.Click(ctx)
}

func selectLanguage(ctx context.Context, r *run) error {
	return r.session.SelectOption(ctx, site.LanguageSelect, r.job.TargetLang)
}

func triggerTranslate(ctx context.Context, r *run) error {
	return r.session.ClickText(ctx, site.TranslateText)
}

func awaitCompletion(ctx context.Context, r *run) error {
	return r.session.WaitForPredicate(ctx, site.LoaderHidden)
}

func download(ctx context.Context, r *run) error {
	return r.session.CaptureDownload(ctx, func(ctx context.Context) error {
		return r.session.ClickText(ctx, site.DownloadText)
	}, r.stagingPath)
}

// save moves the staged artifact to its final name.
func save(_ context.Context, r *run) error {
	info, err := os.Stat(r.stagingPath)
	if err != nil {
		return fmt.Errorf("downloaded file missing: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("downloaded file is empty")
	}
	if err := os.Rename(r.stagingPath, r.job.OutputPath()); err != nil {
		return fmt.Errorf("failed to save translated file: %w", err)
	}
	r.size = info.Size()
	return nil
}
