// Package lesson implements command line actions working with lesson files
// and lesson store.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"lbe/block"
	"lbe/config"
	"lbe/editor"
	"lbe/palette"
	"lbe/state"
	"lbe/store"
)

// Blocks parses lesson file and prints resulting block document.
func Blocks(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("blocks")

	src, err := sourceArg(cmd, 0)
	if err != nil {
		return err
	}
	body, err := loadFile(src)
	if err != nil {
		return err
	}

	doc := newParser(env, log).Parse(body)
	log.Info("Lesson parsed", zap.String("source", src), zap.Int("blocks", len(doc)))
	storeManifest(env, filepath.Base(src), doc)

	out := cmd.Root().Writer
	if cmd.Bool("xml") {
		return block.WriteManifest(out, doc)
	}
	_, err = io.WriteString(out, doc.String())
	return err
}

// Normalize rewrites lesson file through parse and serialize.
func Normalize(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("normalize")
	env.Overwrite = cmd.Bool("overwrite")

	src, err := sourceArg(cmd, 0)
	if err != nil {
		return err
	}
	body, err := loadFile(src)
	if err != nil {
		return err
	}

	out, stable := normalize(env, body, log)
	if cmd.Bool("check") {
		if !stable {
			return fmt.Errorf("lesson is not in normal form: %s", src)
		}
		log.Info("Lesson is in normal form", zap.String("source", src))
		return nil
	}
	return writeResult(env, cmd.Args().Get(1), out, cmd.Root().Writer, log)
}

// Edit applies edit script to lesson file or to stored lesson.
func Edit(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")
	env.Overwrite = cmd.Bool("overwrite")

	scriptPath, err := sourceArg(cmd, 0)
	if err != nil {
		return err
	}
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}
	pal, err := palette.Load(env.Cfg.Palette.Path)
	if err != nil {
		return err
	}

	if id := cmd.String("lesson"); len(id) > 0 {
		st, err := openStore(env, log)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, st.Close())
		}()
		return editStored(ctx, env, st, pal, script, id, log)
	}

	src, err := sourceArg(cmd, 1)
	if err != nil {
		return err
	}
	body, err := loadFile(src)
	if err != nil {
		return err
	}

	var last string
	sess := newSession(env, log, editor.WithEmitter(editor.EmitterFunc(func(m string) { last = m })))
	sess.OnExternalChange(body)
	last = sess.Markup()

	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if err := script.Run(ctx, sess, pal, name, log); err != nil {
		return err
	}
	log.Info("Script applied", zap.String("source", src), zap.Int("steps", len(script.Steps)), zap.Int("blocks", sess.Len()))
	storeManifest(env, name, sess.Document())
	return writeResult(env, cmd.Args().Get(2), last, cmd.Root().Writer, log)
}

func editStored(ctx context.Context, env *state.LocalEnv, st *store.Store, pal *palette.Palette, script *Script, id string, log *zap.Logger) error {
	l, err := st.Lesson(id)
	if err != nil {
		return err
	}
	binding := st.Bind(id, l.Markup)
	sess := newSession(env, log, editor.WithEmitter(binding), editor.WithHistory(binding))
	sess.OnExternalChange(l.Markup)

	name := l.Title
	if name == "" {
		name = l.ID
	}
	if err := script.Run(ctx, sess, pal, name, log); err != nil {
		return multierr.Append(err, binding.Err())
	}
	if err := binding.Err(); err != nil {
		return fmt.Errorf("unable to persist lesson %s: %w", id, err)
	}
	log.Info("Script applied", zap.String("lesson", id), zap.Int("steps", len(script.Steps)), zap.Int("blocks", sess.Len()))
	storeManifest(env, id, sess.Document())
	return nil
}

// Import stores lessons found under source.
func Import(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("import")
	env.Overwrite = cmd.Bool("overwrite")

	if err := setCodePage(env, cmd.String("force-zip-cp"), log); err != nil {
		return err
	}

	src, err := sourceArg(cmd, 0)
	if err != nil {
		return err
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	st, err := openStore(env, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	log.Info("Import starting", zap.String("source", src), zap.String("store", env.Cfg.Store.Path))
	defer func(start time.Time) {
		log.Info("Import completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	imp := &importer{env: env, store: st, parser: newParser(env, log), serializer: newSerializer(env, log), log: log}
	return imp.process(ctx, src)
}

// Export writes stored lesson markup. When destination is a directory file
// is named after lesson title.
func Export(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")
	env.Overwrite = cmd.Bool("overwrite")

	id, err := sourceArg(cmd, 0)
	if err != nil {
		return err
	}
	st, err := openStore(env, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	l, err := st.Lesson(id)
	if err != nil {
		return err
	}
	dst := cmd.Args().Get(1)
	if fi, err := os.Stat(dst); len(dst) > 0 && err == nil && fi.IsDir() {
		name := l.Title
		if name == "" {
			name = l.ID
		}
		dst = filepath.Join(dst, config.CleanFileName(name)+".html")
	}
	return writeResult(env, dst, l.Markup, cmd.Root().Writer, log)
}

// Undo restores stored lesson from its latest snapshot.
func Undo(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("undo")

	id, err := sourceArg(cmd, 0)
	if err != nil {
		return err
	}
	st, err := openStore(env, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	if _, err := st.Undo(id); err != nil {
		return err
	}
	l, err := st.Lesson(id)
	if err != nil {
		return err
	}
	log.Info("Lesson restored", zap.String("lesson", id), zap.Int("snapshots left", l.Snapshots))
	return nil
}

// Lessons lists stored lessons.
func Lessons(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("lessons")

	st, err := openStore(env, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	list, err := st.Lessons()
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	for _, l := range list {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%d\t%s\n", l.ID, l.Updated.Format(time.DateTime), l.Snapshots, l.Title); err != nil {
			return err
		}
	}
	return nil
}

// Palette lists available block templates.
func Palette(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	pal, err := palette.Load(env.Cfg.Palette.Path)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	for _, id := range pal.IDs() {
		t, _ := pal.Get(id)
		if _, err := fmt.Fprintf(out, "%s\t%s\n", t.ID, t.Label); err != nil {
			return err
		}
	}
	return nil
}

func sourceArg(cmd *cli.Command, i int) (string, error) {
	arg := cmd.Args().Get(i)
	if len(arg) == 0 {
		return "", errors.New("required argument is missing, see help")
	}
	return arg, nil
}

func newParser(env *state.LocalEnv, log *zap.Logger) *block.Parser {
	cfg := &env.Cfg.Editor
	f := block.NewFactory(log, block.WithPreviewLength(cfg.PreviewLength))
	return block.NewParser(f, cfg.MaxDepth, log)
}

func newSerializer(env *state.LocalEnv, log *zap.Logger) *block.Serializer {
	return block.NewSerializer(env.Cfg.Editor.Mobile.Breakout, log)
}

func newSession(env *state.LocalEnv, log *zap.Logger, opts ...editor.Option) *editor.Session {
	return editor.NewSession(&env.Cfg.Editor, log, opts...)
}

func openStore(env *state.LocalEnv, log *zap.Logger) (*store.Store, error) {
	return store.Open(env.Cfg.Store.Path, env.Cfg.Store.History, log)
}

// normalize returns serialized document and whether source already was
// serializer output.
func normalize(env *state.LocalEnv, body string, log *zap.Logger) (string, bool) {
	out := newSerializer(env, log).Serialize(newParser(env, log).Parse(body))
	return out, out == body
}

// loadFile reads lesson body from HTML file.
func loadFile(path string) (string, error) {
	ok, enc, err := isLessonFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to check file type: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("input was not recognized as HTML lesson (%s)", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	body, err := readLesson(f, enc)
	if err != nil {
		return "", fmt.Errorf("unable to read lesson (%s): %w", path, err)
	}
	return body, nil
}

// writeResult writes markup to destination file, or to out when destination
// is empty.
func writeResult(env *state.LocalEnv, dst, markup string, out io.Writer, log *zap.Logger) error {
	if len(dst) == 0 {
		_, err := io.WriteString(out, markup+"\n")
		return err
	}
	if _, err := os.Stat(dst); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", dst)
		}
		log.Warn("Overwriting existing file", zap.String("file", dst))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(dst, []byte(markup+"\n"), 0644); err != nil {
		return fmt.Errorf("unable to write lesson: %w", err)
	}
	log.Info("Lesson written", zap.String("file", dst))
	if env.Rpt != nil {
		env.Rpt.Store("result-"+filepath.Base(dst), dst)
	}
	return nil
}

// storeManifest keeps block manifest in debug report.
func storeManifest(env *state.LocalEnv, name string, doc block.Document) {
	if env.Rpt == nil {
		return
	}
	m := block.Manifest(doc)
	data, err := m.WriteToBytes()
	if err != nil {
		env.Log.Debug("Unable to prepare manifest for report", zap.Error(err))
		return
	}
	env.Rpt.StoreData("manifest-"+name+".xml", data)
}
