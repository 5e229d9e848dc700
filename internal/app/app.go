// Package app wires configuration, the document, the editor and the
// background helpers into the interactive qcode session.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qcode/internal/complete"
	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/document"
	"github.com/kobzarvs/qcode/internal/editor"
	"github.com/kobzarvs/qcode/internal/launcher"
	"github.com/kobzarvs/qcode/internal/logger"
	"github.com/kobzarvs/qcode/internal/session"
	"github.com/kobzarvs/qcode/internal/watcher"
)

type Options struct {
	Path string
}

// App is the top-level runtime for qcode.
type App struct {
	opts Options
}

func New(opts Options) *App {
	return &App{opts: opts}
}

type compileDone struct {
	tcell.EventTime
	res launcher.Result
	err error
}

type fileChanged struct {
	tcell.EventTime
}

func (a *App) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}
	doc, lang, err := LoadDocument(cfg, langs, a.opts.Path)
	if err != nil {
		return err
	}

	ed := editor.New(cfg, doc)
	if lang != nil {
		ed.SetLanguage(lang.Name)
	}
	ed.SetCompleter(loadCompleter(cfg))

	sm, err := session.NewManager(15 * time.Second)
	if err != nil {
		logger.Warn("session unavailable", "err", err)
	}
	absPath := ""
	if a.opts.Path != "" {
		absPath, _ = filepath.Abs(a.opts.Path)
	}
	if sm != nil && absPath != "" {
		if st, ok := sm.FileState(absPath); ok {
			ed.SetCursor(editor.Cursor{Row: st.CursorRow, Col: st.CursorCol})
			ed.SetScroll(st.ScrollY)
		}
	}
	defer func() {
		if sm == nil {
			return
		}
		if absPath != "" {
			c := ed.Cursor()
			st := session.FileState{CursorRow: c.Row, CursorCol: c.Col, ScrollY: ed.Scroll()}
			if lang != nil {
				st.Language = lang.Name
			}
			sm.SetFileState(absPath, st)
		}
		if err := sm.Stop(); err != nil {
			logger.Warn("session save failed", "err", err)
		}
	}()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Editor.Watch && doc.Path() != "" {
		stop := watchFile(ctx, s, doc.Path())
		defer stop()
	}

	comp := launcher.Launcher{Command: cfg.Compiler.Command, Detached: cfg.Compiler.Detached}
	compiling := false

	ed.Render(s)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *compileDone:
			compiling = false
			reportCompile(ed, ev.res, ev.err)
		case *fileChanged:
			onFileChanged(ed)
		}

		if file, ok := ed.ConsumeCompileRequest(); ok {
			switch {
			case compiling:
				ed.SetStatusMessage("compiler already running")
			case comp.Detached:
				if pid, err := comp.Start(file); err != nil {
					ed.SetStatusMessage(err.Error())
				} else {
					ed.SetStatusMessage(fmt.Sprintf("compiler started (pid %d)", pid))
				}
			default:
				compiling = true
				go func() {
					res, err := comp.Run(ctx, file)
					ev := &compileDone{res: res, err: err}
					ev.SetEventNow()
					_ = s.PostEvent(ev)
				}()
			}
		}
		ed.Render(s)
	}
}

// LoadDocument opens path (or an empty buffer when path is "") with the
// highlighter of the matching language. Files above max-highlight-bytes
// are shown plain.
func LoadDocument(cfg config.Config, langs config.Languages, path string) (*document.Document, *config.Language, error) {
	lang := langs.Match(path)
	if path == "" {
		lang = langs.Find("cpp")
	}
	doc := document.New(nil)
	if path != "" {
		err := doc.Load(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// New file, created on first save.
			doc.SetPath(path)
		case err != nil:
			return nil, nil, err
		}
	}
	if lang == nil {
		return doc, nil, nil
	}
	if limit := cfg.Editor.MaxHighlightBytes; limit > 0 && int64(len(doc.Text())) > limit {
		logger.Info("highlighting disabled for large file", "path", path, "limit", limit)
		return doc, lang, nil
	}
	hl, err := lang.Build()
	if err != nil {
		return nil, nil, err
	}
	doc.SetHighlighter(hl)
	return doc, lang, nil
}

func loadCompleter(cfg config.Config) *complete.Completer {
	opts := complete.Options{
		MinPrefix:     cfg.Completion.MinPrefix,
		CaseSensitive: cfg.Completion.CaseSensitive,
		WrapAround:    cfg.Completion.WrapAround,
	}
	path, err := cfg.WordlistPath()
	if err != nil {
		logger.Warn("word list path", "err", err)
		return complete.New(nil, opts)
	}
	words, err := complete.LoadWords(path)
	if err != nil {
		logger.Warn("word list unreadable", "path", path, "err", err)
	}
	logger.Debug("word list loaded", "path", path, "words", len(words))
	return complete.New(words, opts)
}

func watchFile(ctx context.Context, s tcell.Screen, path string) func() {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		logger.Warn("file watcher unavailable", "err", err)
		return func() {}
	}
	ch, err := w.Start()
	if err != nil {
		logger.Warn("file watcher unavailable", "err", err)
		_ = w.Stop()
		return func() {}
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				ev := &fileChanged{}
				ev.SetEventNow()
				_ = s.PostEvent(ev)
			}
		}
	}()
	return func() { _ = w.Stop() }
}

// onFileChanged reloads a clean buffer whose file changed on disk. Our own
// saves leave disk and buffer equal and are ignored.
func onFileChanged(ed *editor.Editor) {
	doc := ed.Document()
	data, err := os.ReadFile(doc.Path())
	if err != nil {
		logger.Warn("changed file unreadable", "path", doc.Path(), "err", err)
		return
	}
	if string(data) == doc.Text() {
		return
	}
	if doc.Dirty() {
		ed.SetStatusMessage("file changed on disk; buffer has unsaved changes")
		return
	}
	if err := ed.Reload(); err != nil {
		ed.SetStatusMessage(err.Error())
	}
}

func reportCompile(ed *editor.Editor, res launcher.Result, err error) {
	if err != nil {
		logger.Error("compile failed", "err", err)
		ed.SetStatusMessage(err.Error())
		return
	}
	ed.SetDiagnostics(res.Diagnostics)
	took := res.Duration.Round(10 * time.Millisecond)
	switch {
	case res.OK() && len(res.Diagnostics) == 0:
		ed.SetStatusMessage(fmt.Sprintf("compiled OK in %s", took))
	case res.OK():
		ed.SetStatusMessage(fmt.Sprintf("compiled with %d diagnostics in %s", len(res.Diagnostics), took))
	default:
		ed.SetStatusMessage(fmt.Sprintf("compile failed (exit %d): %d diagnostics", res.ExitCode, len(res.Diagnostics)))
	}
}
