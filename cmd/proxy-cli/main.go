package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultServer = "http://localhost:8000"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "packages":
		cmdPackages(args)
	case "artifacts":
		cmdArtifacts(args)
	case "pull":
		cmdPull(args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pigi proxy CLI

Usage:
  proxy-cli packages [options]
  proxy-cli artifacts <package> [options]
  proxy-cli pull <package> <assetId> <assetName> [options]

Options:
  --server <url>    Proxy URL (default: http://localhost:8000)
  --token <token>   Upstream credential, sent as Basic-auth password
  --output <file>   Output file path (for pull)`)
}

// parseFlags extracts --key value pairs from args.
func parseFlags(args []string) (positional []string, flags map[string]string) {
	flags = make(map[string]string)
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "--") && i+1 < len(args) {
			flags[strings.TrimPrefix(args[i], "--")] = args[i+1]
			i++
		} else {
			positional = append(positional, args[i])
		}
	}
	return
}

func getFlag(flags map[string]string, key, def string) string {
	if v, ok := flags[key]; ok {
		return v
	}
	return def
}

// get issues a GET against the proxy. The token, when set, travels as the
// Basic-auth password; the username is ignored by the proxy.
func get(rawURL, token string) (*http.Response, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.SetBasicAuth("pigi", token)
	}
	return http.DefaultClient.Do(req)
}

func cmdPackages(args []string) {
	_, flags := parseFlags(args)
	server := getFlag(flags, "server", defaultServer)

	resp, err := get(indexURL(server), getFlag(flags, "token", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(os.Stderr, formatHTTPError(resp))
		os.Exit(1)
	}

	anchors, err := parseAnchors(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if len(anchors) == 0 {
		fmt.Println("No packages found.")
		return
	}

	fmt.Println("Packages:")
	for _, a := range anchors {
		fmt.Printf("  - %s\n", a.Text)
	}
}

func cmdArtifacts(args []string) {
	pos, flags := parseFlags(args)
	if len(pos) < 1 {
		fmt.Fprintln(os.Stderr, "usage: proxy-cli artifacts <package> [--server URL] [--token TOKEN]")
		os.Exit(1)
	}

	pkg := pos[0]
	server := getFlag(flags, "server", defaultServer)

	resp, err := get(packageURL(server, pkg), getFlag(flags, "token", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(os.Stderr, formatHTTPError(resp))
		os.Exit(1)
	}

	anchors, err := parseAnchors(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if len(anchors) == 0 {
		fmt.Printf("No artifacts for '%s'.\n", pkg)
		return
	}

	fmt.Printf("Artifacts for %s:\n", pkg)
	for _, a := range anchors {
		if ref, ok := parseArtifactRef(a.Href); ok {
			fmt.Printf("  %10d  %s\n", ref.ID, ref.Name)
		}
	}
}

func cmdPull(args []string) {
	pos, flags := parseFlags(args)
	if len(pos) < 3 {
		fmt.Fprintln(os.Stderr, "usage: proxy-cli pull <package> <assetId> <assetName> [--server URL] [--token TOKEN] [--output FILE]")
		os.Exit(1)
	}

	pkg, assetID, assetName := pos[0], pos[1], pos[2]
	server := getFlag(flags, "server", defaultServer)
	output := getFlag(flags, "output", assetName)

	resp, err := get(assetURL(server, pkg, assetID, assetName), getFlag(flags, "token", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(os.Stderr, formatHTTPError(resp))
		os.Exit(1)
	}

	outputDir := filepath.Dir(output)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	tmpOutput := output + ".part"
	file, err := os.Create(tmpOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating output file: %v\n", err)
		os.Exit(1)
	}
	success := false
	defer func() {
		file.Close()
		if !success {
			_ = os.Remove(tmpOutput)
		}
	}()

	pw := &progressWriter{
		writer: file,
		total:  resp.ContentLength,
		label:  "Downloading",
	}

	start := time.Now()
	n, err := io.Copy(pw, resp.Body)
	fmt.Println() // newline after progress
	if err != nil {
		fmt.Fprintf(os.Stderr, "error downloading: %v\n", err)
		os.Exit(1)
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing downloaded file: %v\n", err)
		os.Exit(1)
	}
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error replacing output file: %v\n", err)
		os.Exit(1)
	}
	if err := os.Rename(tmpOutput, output); err != nil {
		fmt.Fprintf(os.Stderr, "error finalizing output file: %v\n", err)
		os.Exit(1)
	}
	success = true

	elapsed := time.Since(start)
	fmt.Printf("Pulled %s/%s -> %s\n", pkg, assetName, output)
	fmt.Printf("  Size:     %s\n", formatBytes(n))
	fmt.Printf("  Duration: %v\n", elapsed.Round(time.Millisecond))
}

// progressWriter wraps a writer and prints progress.
type progressWriter struct {
	writer  io.Writer
	total   int64
	current int64
	label   string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.current += int64(n)
	pw.printProgress()
	return n, err
}

func (pw *progressWriter) printProgress() {
	if pw.total <= 0 {
		fmt.Fprintf(os.Stderr, "\r%s: %s", pw.label, formatBytes(pw.current))
		return
	}
	pct := float64(pw.current) / float64(pw.total) * 100
	barLen := 30
	filled := int(pct / 100 * float64(barLen))
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barLen-filled)
	fmt.Fprintf(os.Stderr, "\r%s: [%s] %.1f%% %s/%s", pw.label, bar, pct, formatBytes(pw.current), formatBytes(pw.total))
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

func indexURL(server string) string {
	return strings.TrimRight(server, "/") + "/simple/"
}

func packageURL(server, pkg string) string {
	return fmt.Sprintf("%s/simple/%s/", strings.TrimRight(server, "/"), url.PathEscape(pkg))
}

func assetURL(server, pkg, assetID, assetName string) string {
	return fmt.Sprintf("%s/simple/%s/%s/%s", strings.TrimRight(server, "/"), url.PathEscape(pkg), url.PathEscape(assetID), url.PathEscape(assetName))
}

func formatHTTPError(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)
	if len(body) == 0 {
		return fmt.Sprintf("error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return fmt.Sprintf("error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
