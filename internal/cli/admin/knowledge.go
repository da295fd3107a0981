package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ogrenci-destek/destekai/internal/chunker"
	"github.com/ogrenci-destek/destekai/internal/config"
	"github.com/ogrenci-destek/destekai/internal/service"
	"github.com/ogrenci-destek/destekai/internal/storage"
	"github.com/ogrenci-destek/destekai/internal/textindex"
)

// KnowledgeCmd returns the knowledge command group
func KnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage the knowledge index",
	}

	cmd.AddCommand(knowledgeRefreshCmd())
	cmd.AddCommand(knowledgeSearchCmd())

	return cmd
}

func knowledgeRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the knowledge index from the source documents",
		Long:  "Drop the index cache and rebuild from the configured slide deck and FAQ document",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			svc, err := buildKnowledgeService(ctx)
			if err != nil {
				return err
			}

			if err := svc.Refresh(ctx); err != nil {
				return fmt.Errorf("failed to refresh index: %w", err)
			}

			if !svc.Ready() {
				fmt.Println("index is offline: no source documents available")
				return nil
			}
			fmt.Printf("index rebuilt: %d chunks\n", svc.Size())
			return nil
		},
	}
}

func knowledgeSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Query the knowledge index",
		Long:  "Run a retrieval query against the knowledge index and print the scored chunks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topK, _ := cmd.Flags().GetInt("top-k")

			svc, err := buildKnowledgeService(ctx)
			if err != nil {
				return err
			}

			if err := svc.Build(ctx, false); err != nil {
				return fmt.Errorf("failed to build index: %w", err)
			}
			if !svc.Ready() {
				return fmt.Errorf("index is offline: no source documents available")
			}

			query := strings.Join(args, " ")
			results := svc.Search(query, topK)
			if len(results) == 0 {
				fmt.Println("no results")
				return nil
			}

			for i, res := range results {
				fmt.Printf("%d. score=%.4f source=%s", i+1, res.Score, res.Source)
				if res.SlideNumber != nil {
					fmt.Printf(" slide=%d", *res.SlideNumber)
				}
				fmt.Printf("\n%s\n\n", res.ChunkText)
			}
			return nil
		},
	}

	cmd.Flags().IntP("top-k", "k", 3, "Number of chunks to return")

	return cmd
}

func buildKnowledgeService(ctx context.Context) (*service.KnowledgeService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	svc := service.NewKnowledgeService(textindex.NewIndex(), chunker.Config{
		Size:    cfg.ChunkSize,
		Overlap: cfg.ChunkOverlap,
	}, cfg.SlidesPath, cfg.FAQPath, cfg.CacheDir)

	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		svc.WithDocumentStore(s3Client)
	}

	return svc, nil
}
