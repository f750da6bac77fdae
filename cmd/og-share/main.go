// og-share serves a local folder over HTTP so phones and laptops on
// the same Wi‑Fi can exchange files through a browser.
//
// Usage:
//
//	og-share                   # show instructions and a QR preview (no server)
//	og-share runserver         # start the server (blocks)
//	og-share runserver --open  # start the server and open a browser
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"

	"github.com/shahilkhan2029/og-share/internal/lan"
	"github.com/shahilkhan2029/og-share/internal/server"
)

const (
	port     = 8000
	shareDir = "shared"

	// settleDelay is how long to wait after startup before opening
	// the browser, so the listener is accepting by then.
	settleDelay = 1 * time.Second

	// drainTimeout bounds how long in-flight requests may run once a
	// shutdown has been requested.
	drainTimeout = 5 * time.Second
)

var openBrowser bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "og-share",
		Short: "Share files between laptop and phone on the same Wi‑Fi",
		Run: func(cmd *cobra.Command, args []string) {
			printInstructions()
		},
	}

	runCmd := &cobra.Command{
		Use:   "runserver",
		Short: "Start the share server (blocks until interrupted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(openBrowser)
		},
	}
	runCmd.Flags().BoolVar(&openBrowser, "open", false, "open a local browser once the server is up")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func shareURL() string {
	return fmt.Sprintf("http://%s:%d/", lan.LocalIP(), port)
}

// printBanner shows the shared folder and the URL other devices
// should open.
func printBanner(url string) {
	abs, err := filepath.Abs(shareDir)
	if err != nil {
		abs = shareDir
	}

	fmt.Println()
	fmt.Println("========================================")
	fmt.Println(" SHARE WEB APP")
	fmt.Println("========================================")
	fmt.Printf(" Folder: %s\n", abs)
	fmt.Printf(" URL:    %s\n", url)
	fmt.Println("----------------------------------------")
}

// printInstructions is the no-argument mode: banner, QR preview, and
// a hint how to actually start serving. No listener is started.
func printInstructions() {
	url := shareURL()
	printBanner(url)

	fmt.Println("Scan to open once the server is running:")
	printTerminalQR(url)

	fmt.Println("To run the server, use:")
	fmt.Println("    og-share runserver")
}

// printTerminalQR renders url as a half-block QR code on stdout.
func printTerminalQR(url string) {
	qrterminal.GenerateHalfBlock(url, qrterminal.M, os.Stdout)
}

// runServer starts the listener in the background and blocks until an
// interrupt, a listener error, or a /shutdown request, then drains
// in-flight requests bounded by drainTimeout.
func runServer(open bool) error {
	url := shareURL()

	srv, err := server.New(server.Config{
		Addr:    fmt.Sprintf(":%d", port),
		Dir:     shareDir,
		BaseURL: url,
	})
	if err != nil {
		return err
	}

	printBanner(url)
	printTerminalQR(url)
	fmt.Println("Server running... (Press Ctrl+C to stop)")

	errCh := make(chan error, 1)
	go func() {
		log.Printf("service=og-share msg=%q addr=:%d dir=%s", "starting", port, shareDir)
		errCh <- srv.Start()
	}()

	if open {
		go func() {
			time.Sleep(settleDelay)
			if err := openURL(url); err != nil {
				log.Printf("service=og-share msg=%q err=%v", "browser_open_failed", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("service=og-share msg=%q signal=%s", "shutting_down", sig.String())
	case <-srv.ShutdownRequested():
		log.Printf("service=og-share msg=%q", "shutdown_requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Printf("service=og-share msg=%q", "shutdown_complete")
	return nil
}

// openURL opens url in the platform's default browser.
func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
