package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"plantreport/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrNoBrowser はヘッドレス Chrome が見つからない場合のエラーです。
var ErrNoBrowser = errors.New("no chrome/chromium binary found")

const renderTimeout = 30 * time.Second

// BrowserPath は設定の chromeBin、無ければシステムの Chrome を返します。
func BrowserPath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}
	return "", ErrNoBrowser
}

// PDF は HTML をヘッドレス Chrome で A4 の PDF に変換します。
func PDF(ctx context.Context, html string) ([]byte, error) {
	bin, err := BrowserPath(config.GetConfig().ChromeBin)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	l := launcher.New().Bin(bin).Headless(true).Leakless(false)
	defer l.Cleanup()
	u, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to set page content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	a4Width, a4Height := 8.27, 11.69
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      &a4Width,
		PaperHeight:     &a4Height,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	b, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	config.GetLogger().WithField("bytes", len(b)).Debug("pdf rendered")
	return b, nil
}
