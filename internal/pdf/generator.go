package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const defaultTimeout = 30 * time.Second

// Letter 纸张尺寸（英寸），与打印版 8.5in 宽的版心一致。
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11.0
)

// Generator 在无头 Chromium 中把 HTML 打印为 PDF。每次调用启动独立的浏览器进程。
type Generator struct {
	// Bin 为空时自动查找本机 Chromium，找不到则由 launcher 下载。
	Bin     string
	Timeout time.Duration
}

// NewGenerator 构造 Generator，timeout <= 0 时使用 30 秒。
func NewGenerator(timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &Generator{Timeout: timeout}
	if path, ok := launcher.LookPath(); ok {
		g.Bin = path
	}
	return g
}

// GeneratePDFFromHTML 渲染 HTML 并返回 PDF 字节。
func (g *Generator) GeneratePDFFromHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if g.Bin != "" {
		launch = launch.Bin(g.Bin)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(timeout).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(timeout)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	// 等待 Web 字体就绪，最多 3 秒，失败不阻断导出。
	_, _ = page.Eval(`() => {
	  if (document && document.fonts && document.fonts.ready) {
	    return Promise.race([
	      document.fonts.ready.then(() => true),
	      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
	    ]);
	  }
	  return true;
	}`)

	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return nil, fmt.Errorf("set emulated media to print: %w", err)
	}

	width, height := paperWidthInches, paperHeightInches
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      &width,
		PaperHeight:     &height,
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}
