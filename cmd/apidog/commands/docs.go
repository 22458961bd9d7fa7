package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	_ "github.com/swaggo/files"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ennam/apidog-sync/internal/schema"
)

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Serve a local Swagger UI preview of an exported schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				file = filepath.Join(cfg.OutputDir, "openapi_schema_latest.json")
			}
			addr, _ := cmd.Flags().GetString("addr")

			// Load through the schema package so YAML exports can be
			// previewed too; the UI is always fed JSON.
			doc, err := schema.Load(file)
			if err != nil {
				return err
			}
			data, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to serialize schema: %w", err)
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(data)
			})
			mux.Handle("/docs/", httpSwagger.Handler(
				httpSwagger.URL("/openapi.json"),
				httpSwagger.DeepLinking(true),
			))
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/docs/", http.StatusFound)
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s/docs/\n", file, addr)

			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringP("file", "f", "", "Schema file to serve (default: latest export)")
	cmd.Flags().String("addr", "localhost:8080", "Listen address")
	return cmd
}
