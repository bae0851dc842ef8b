package lesson

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"lbe/archive"
	"lbe/block"
	"lbe/common"
	"lbe/state"
	"lbe/store"
)

type importer struct {
	env        *state.LocalEnv
	store      *store.Store
	parser     *block.Parser
	serializer *block.Serializer
	log        *zap.Logger
	count      int
}

// Since zip "standard" does not define file name encoding we may need to
// force archaic code page for old archives.
func setCodePage(env *state.LocalEnv, cp string, log *zap.Logger) (err error) {
	if len(cp) == 0 {
		return nil
	}
	env.CodePage, err = ianaindex.IANA.Encoding(cp)
	if err != nil || env.CodePage == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		env.CodePage = nil
		return nil
	}
	n, _ := ianaindex.IANA.Name(env.CodePage)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	return nil
}

// process determines whether source is a directory, an archive (possibly
// with path inside it) or a single lesson file.
func (imp *importer) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := imp.processDir(ctx, head); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := imp.processArchive(ctx, head, tail); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		ok, enc, err := isLessonFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if ok && len(tail) == 0 {
			f, err := os.Open(head)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := imp.processLesson(ctx, f, enc, filepath.Base(head)); err != nil {
				return err
			}
			break
		}
		return fmt.Errorf("input was not recognized as HTML lesson (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	if imp.count == 0 {
		return errors.New("no lessons were imported")
	}
	return nil
}

func (imp *importer) processDir(ctx context.Context, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			imp.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			imp.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := imp.processArchive(ctx, path, ""); err != nil {
				imp.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		ok, enc, err := isLessonFile(path)
		if err != nil {
			imp.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !ok {
			imp.log.Debug("Skipping file, not recognized as lesson or archive", zap.String("file", path))
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			imp.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer f.Close()

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := imp.processLesson(ctx, f, enc, rel); err != nil {
			imp.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

func (imp *importer) processArchive(ctx context.Context, path, pathIn string) error {
	n, err := archive.Walk(ctx, path, pathIn, func(name string, f *zip.File) error {
		ok, enc, err := isLessonInArchive(f)
		if err != nil {
			imp.log.Warn("Skipping file in archive", zap.String("archive", name), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !ok {
			imp.log.Debug("Skipping file, not recognized as lesson", zap.String("archive", name), zap.String("file", f.FileHeader.Name))
			return nil
		}

		r, err := f.Open()
		if err != nil {
			imp.log.Error("Unable to process file in archive", zap.String("archive", name), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.FileHeader.Name
		if cp := imp.env.CodePage; cp != nil && f.FileHeader.NonUTF8 {
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				imp.log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := imp.processLesson(ctx, r, enc, pathInArchive); err != nil {
			imp.log.Error("Unable to process file in archive", zap.String("archive", name), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	imp.log.Debug("Archive processed", zap.String("archive", path), zap.String("path", pathIn), zap.Int("files", n))
	return err
}

// processLesson normalizes single lesson and saves it. "src" is path relative
// to the import source, lesson id is derived from it.
func (imp *importer) processLesson(ctx context.Context, r io.Reader, enc srcEncoding, src string) (rerr error) {
	id := lessonID(src)

	imp.log.Info("Import starting", zap.String("from", src), zap.String("id", id))
	defer func(start time.Time) {
		// one broken lesson should not stop the rest
		if r := recover(); r != nil {
			imp.log.Error("Import ended with panic", zap.Any("panic", r), zap.String("from", src), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("import panic: %v", r)
			return
		}
		if rerr == nil {
			imp.log.Info("Import completed", zap.Duration("elapsed", time.Since(start)), zap.String("id", id))
		}
	}(time.Now())

	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("unable to derive lesson id from %q", src)
	}

	if _, err := imp.store.Lesson(id); err == nil {
		if !imp.env.Overwrite {
			return fmt.Errorf("lesson already exists: %s", id)
		}
		imp.log.Warn("Overwriting existing lesson", zap.String("id", id))
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	body, err := readLesson(r, enc)
	if err != nil {
		return fmt.Errorf("unable to read lesson (%s): %w", src, err)
	}
	doc := imp.parser.Parse(body)
	if err := imp.store.Save(store.Lesson{ID: id, Title: lessonTitle(doc, src), Markup: imp.serializer.Serialize(doc)}); err != nil {
		return err
	}
	imp.count++
	storeManifest(imp.env, id, doc)
	return nil
}

// lessonID turns relative path into slug: "unit 1/Fractions.html" becomes
// "unit-1-fractions".
func lessonID(src string) string {
	src = strings.TrimSuffix(filepath.ToSlash(src), filepath.Ext(src))
	return slug.Make(strings.ReplaceAll(src, "/", " "))
}

// lessonTitle is the text of the first heading, file name when there is
// none.
func lessonTitle(doc block.Document, src string) string {
	for _, b := range doc {
		if b.Kind != common.BlockKindContent && b.Kind != common.BlockKindCard {
			continue
		}
		if len(b.TagName) == 2 && b.TagName[0] == 'H' && b.TagName[1] >= '1' && b.TagName[1] <= '6' {
			return b.PreviewText
		}
	}
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}
