// reviewctl is a small API client for the Code Review Assistant server,
// useful for smoke-testing a running instance from the command line.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	version   = "2.0.0"
	serverURL string
)

var httpClient = &http.Client{Timeout: 120 * time.Second}

func main() {
	rootCmd := &cobra.Command{
		Use:     "reviewctl",
		Short:   "Client for the Code Review Assistant API",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:5001", "Base URL of the API server")

	rootCmd.AddCommand(
		uploadCmd(),
		batchCmd(),
		listCmd(),
		showCmd(),
		deleteCmd(),
		clearCmd(),
		statsCmd(),
		searchCmd(),
		trendsCmd(),
		compareCmd(),
		exportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a single file for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postFiles("/api/review", "file", args[:1])
		},
	}
}

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>...",
		Short: "Upload multiple files for review",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postFiles("/api/batch-review", "files", args)
		},
	}
}

func listCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/reviews"
			if limit > 0 {
				path += fmt.Sprintf("?limit=%d", limit)
			}
			return get(path)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of reviews to list")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a full review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get("/api/review/" + args[0])
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(http.MethodDelete, "/api/review/"+args[0], nil, "")
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			return do(http.MethodDelete, "/api/reviews", nil, "")
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return get("/api/statistics")
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search reviews by filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get("/api/reviews/search?q=" + url.QueryEscape(args[0]))
		},
	}
}

func trendsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show quality trends over time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return get(fmt.Sprintf("/api/trends?days=%d", days))
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days to include")
	return cmd
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <id1> <id2>",
		Short: "Compare two reviews",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := fmt.Sprintf(`{"review_id_1": %s, "review_id_2": %s}`, args[0], args[1])
			return do(http.MethodPost, "/api/reviews/compare", bytes.NewBufferString(body), "application/json")
		},
	}
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a review as a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := httpClient.Get(serverURL + "/api/review/" + args[0] + "/export")
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %s: %s", resp.Status, data)
			}
			if out == "" {
				out = "review_" + args[0] + ".json"
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output path (default review_<id>.json)")
	return cmd
}

// postFiles uploads local files as a multipart form under the given field.
func postFiles(path, field string, paths []string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		part, err := writer.CreateFormFile(field, filepath.Base(p))
		if err != nil {
			return err
		}
		if _, err := part.Write(data); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return do(http.MethodPost, path, &buf, writer.FormDataContentType())
}

func get(path string) error {
	return do(http.MethodGet, path, nil, "")
}

// do performs a request and pretty-prints the JSON response.
func do(method, path string, body io.Reader, contentType string) error {
	req, err := http.NewRequest(method, serverURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, data, "", "  ") == nil {
		data = pretty.Bytes()
	}
	fmt.Println(string(data))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
