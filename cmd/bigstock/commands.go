package main

import (
	"github.com/spf13/cobra"

	"github.com/samvad-hq/bigstock-client/internal/app"
	"github.com/samvad-hq/bigstock-client/pkg/bigstock"
)

func (c *cli) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search key=value...",
		Short:   "Search assets",
		Example: "  bigstock search q=sunset limit=10 orientation=h",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := parseKV(args)
			if err != nil {
				return err
			}
			return c.show(c.client.Search(cmd.Context(), bigstock.NewParams(kv...)))
		},
	}
}

func (c *cli) newAssetCmd() *cobra.Command {
	var assetType string
	cmd := &cobra.Command{
		Use:   "asset <id>",
		Short: "Get an asset by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.show(c.client.GetAsset(cmd.Context(), args[0], assetType))
		},
	}
	cmd.Flags().StringVar(&assetType, "type", bigstock.TypeImage, "asset type: image or video")
	return cmd
}

func (c *cli) newTypedAssetCmd(use, assetType string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: "Get a single " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if assetType == bigstock.TypeVideo {
				return c.show(c.client.GetVideo(cmd.Context(), args[0]))
			}
			return c.show(c.client.GetImage(cmd.Context(), args[0]))
		},
	}
}

func (c *cli) newCollectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections [type]",
		Short: "List the account's collections of a type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := ""
			if len(args) == 1 {
				typ = args[0]
			}
			return c.show(c.client.GetCollections(cmd.Context(), typ))
		},
	}
}

func (c *cli) newCollectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collection <type> <id> [key=value...]",
		Short: "Get the contents of one collection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := parseKV(args[2:])
			if err != nil {
				return err
			}
			return c.show(c.client.GetCollection(cmd.Context(), args[0], args[1], bigstock.NewParams(kv...)))
		},
	}
}

func (c *cli) newLightboxesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lightboxes",
		Short: "List lightboxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.show(c.client.GetLightboxes(cmd.Context()))
		},
	}
}

func (c *cli) newLightboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lightbox <id> [key=value...]",
		Short: "Get one lightbox",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := parseKV(args[1:])
			if err != nil {
				return err
			}
			return c.show(c.client.GetLightbox(cmd.Context(), args[0], bigstock.NewParams(kv...)))
		},
	}
}

func (c *cli) newClipboxesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clipboxes",
		Short: "List clipboxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.show(c.client.GetClipboxes(cmd.Context()))
		},
	}
}

func (c *cli) newClipboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clipbox <id> [key=value...]",
		Short: "Get one clipbox",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := parseKV(args[1:])
			if err != nil {
				return err
			}
			return c.show(c.client.GetClipbox(cmd.Context(), args[0], bigstock.NewParams(kv...)))
		},
	}
}

func (c *cli) newCategoriesCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.show(c.client.GetCategories(cmd.Context(), lang))
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "category language")
	return cmd
}

func (c *cli) newPurchaseCmd() *cobra.Command {
	var assetType string
	cmd := &cobra.Command{
		Use:   "purchase <id> <size_code>",
		Short: "Purchase an asset rendition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.show(c.client.GetPurchase(cmd.Context(), args[0], args[1], assetType))
		},
	}
	cmd.Flags().StringVar(&assetType, "type", bigstock.TypeImage, "asset type: image or video")
	return cmd
}

func (c *cli) newDownloadURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download-url <download_id>",
		Short: "Print the signed download URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printer.Line(c.client.GetDownloadURL(args[0]))
		},
	}
}

func (c *cli) newDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <download_id>",
		Short: "Fetch a purchased file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.show(c.client.Download(cmd.Context(), args[0]))
		},
	}
}

func (c *cli) newAuthKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth-key [id]",
		Short: "Print the auth key for the account or a resource",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return c.printer.Line(c.client.GenerateAuthKey(id))
		},
	}
}

func (c *cli) newAcquireCmd() *cobra.Command {
	var (
		assetType string
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "acquire <id> <size_code>",
		Short: "Purchase, download and record an asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			acq, err := app.NewAcquirer(cmd.Context(), c.cfg, c.client, c.log)
			if err != nil {
				return err
			}
			defer acq.Close()

			out, err := acq.Acquire(cmd.Context(), app.Request{
				ID:       args[0],
				SizeCode: args[1],
				Type:     assetType,
				Force:    force,
			})
			if err != nil {
				return err
			}
			return c.printer.Value(out)
		},
	}
	cmd.Flags().StringVar(&assetType, "type", bigstock.TypeImage, "asset type: image or video")
	cmd.Flags().BoolVar(&force, "force", false, "acquire even when the ledger already holds the file")
	return cmd
}
