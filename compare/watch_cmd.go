package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ndiff/compare/render"
	"github.com/ndiff/compare/server"
)

var watchFlags = &settingsFlags{}

var (
	serveAddr string
	serve     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <main> <sub>",
	Short: "Re-run compare whenever either file changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mainPath, subPath := args[0], args[1]

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("starting watcher: %v", err)
		}
		defer watcher.Close()
		for _, path := range []string{mainPath, subPath} {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}

		var srv *server.Server
		if serve {
			srv, err = server.Run(serveAddr, []byte("<html><body>waiting for first compare</body></html>"))
			if err != nil {
				return fmt.Errorf("starting preview server: %w", err)
			}
			defer srv.Shutdown(context.Background())
			log.Printf("serving live report at http://%s, press Ctrl-C to stop", srv.Addr())
		}

		if err := rerun(cmd, mainPath, subPath, srv); err != nil {
			log.Printf("compare failed: %v", err)
		}

		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)

		for {
			select {
			case event := <-watcher.Events:
				if event.Has(fsnotify.Chmod) {
					continue
				}
				start := time.Now()
				if err := rerun(cmd, mainPath, subPath, srv); err != nil {
					log.Printf("compare failed: %v", err)
					continue
				}
				log.Printf("recompared (%v)", time.Since(start))
			case err := <-watcher.Errors:
				return fmt.Errorf("watching: %w", err)
			case <-sigint:
				fmt.Print("\r")
				log.Printf("received Ctrl-C, shutting down")
				return nil
			}
		}
	},
}

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().BoolVar(&serve, "serve", false, "also serve a live HTML report over HTTP")
	watchCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "address to serve the live report on")
}

func rerun(cmd *cobra.Command, mainPath, subPath string, srv *server.Server) error {
	result, pairs, ed, err := runCompare(cmd, watchFlags, mainPath, subPath)
	if err != nil {
		return err
	}

	if srv == nil {
		fmt.Println(render.Text(ed, pairs, textWidth))
		return nil
	}

	var buf bytes.Buffer
	if err := render.HTMLReport(&buf, ed, result, pairs, render.ReportOptions{
		Title:     fmt.Sprintf("%s vs %s", mainPath, subPath),
		MainLabel: mainPath,
		SubLabel:  subPath,
	}); err != nil {
		return err
	}
	srv.Replace(buf.Bytes())
	return nil
}
