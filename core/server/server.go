package server

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"diffly/core/logger"
	"diffly/core/middleware/auth"
	"diffly/core/middleware/rayid"
	"diffly/core/output"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server serves previously written changeset reports over HTTP. It is
// read-only: diffs are produced by the CLI, the server only lists and
// returns the files.
type Server struct {
	app *fiber.App
	cfg Config
	dir string
	log *zap.Logger
}

// changesetInfo is one entry in the listing response.
type changesetInfo struct {
	ChangesetID string   `json:"changeset_id"`
	Formats     []string `json:"formats"`
}

// New builds the report server over the given output directory.
func New(cfg Config, outputDir string, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{app: app, cfg: cfg, dir: outputDir, log: log}

	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey}))

	app.Get("/changesets", s.handleList)
	app.Get("/changesets/:id/:format", s.handleGet)

	return s
}

// Listen blocks serving requests until Shutdown is called.
func (s *Server) Listen() error {
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleList(c *fiber.Ctx) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON([]changesetInfo{})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read output directory")
	}

	infos := make([]changesetInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "cs_") {
			continue
		}
		infos = append(infos, changesetInfo{
			ChangesetID: entry.Name(),
			Formats:     s.formatsFor(entry.Name()),
		})
	}

	// newest first; changeset ids sort by their timestamp prefix
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ChangesetID > infos[j].ChangesetID
	})
	return c.JSON(infos)
}

func (s *Server) formatsFor(id string) []string {
	formats := make([]string, 0, 3)
	files, err := os.ReadDir(filepath.Join(s.dir, id))
	if err != nil {
		return formats
	}
	for _, f := range files {
		ext := strings.TrimPrefix(filepath.Ext(f.Name()), ".")
		if _, ok := output.For(ext); ok {
			formats = append(formats, ext)
		}
	}
	sort.Strings(formats)
	return formats
}

func (s *Server) handleGet(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != filepath.Base(id) || strings.Contains(id, "..") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid changeset id"})
	}

	format := c.Params("format")
	w, ok := output.For(format)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown format: " + format})
	}

	path := filepath.Join(s.dir, id, id+"."+w.Extension())
	if _, err := os.Stat(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "changeset not found"})
	}
	return c.SendFile(path)
}
