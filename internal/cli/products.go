package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/service"
)

func newProductsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Browse and manage products",
	}
	cmd.AddCommand(
		newProductsListCmd(opts),
		newProductsCreateCmd(opts),
		newProductsUpdateCmd(opts),
		newProductsDeleteCmd(opts),
	)
	return cmd
}

// catalogError turns a failed catalog operation into the notice recorded by
// the catalog service.
func catalogError(opts *options, err error, fallback string) error {
	if err == nil {
		return nil
	}
	msg := opts.app.Catalog.State().LastError
	if msg == "" {
		msg = domain.UserMessage(err, fallback)
	}
	return &userError{msg: msg, cause: err}
}

type productView struct {
	domain.Product
	ImageURL string `json:"image_url,omitempty"`
}

type listView struct {
	Total    int           `json:"total"`
	Matched  int           `json:"matched"`
	Shown    int           `json:"shown"`
	Products []productView `json:"products"`
}

func newProductsListCmd(opts *options) *cobra.Command {
	criteria := domain.DefaultCriteria()
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, filtered and windowed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := opts.app.Catalog
			catalog.FetchAll(cmd.Context())

			st := catalog.State()
			if st.LastError != "" {
				return &userError{msg: st.LastError}
			}

			matched := service.Apply(st.Products, criteria)
			shown := catalog.Visible(criteria, all)

			view := listView{Total: len(st.Products), Matched: len(matched), Shown: len(shown)}
			for _, p := range shown {
				view.Products = append(view.Products, productView{Product: p, ImageURL: opts.app.API.ResolveImage(p.ImageRef)})
			}
			opts.print(cmd.OutOrStdout(), view, formatProducts(view))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&criteria.Category, "category", "", "Only this category ("+strings.Join(domain.Categories, ", ")+")")
	f.Float64Var(&criteria.PriceRange.Min, "min-price", criteria.PriceRange.Min, "Lowest price, inclusive")
	f.Float64Var(&criteria.PriceRange.Max, "max-price", criteria.PriceRange.Max, "Highest price, inclusive")
	f.StringVar(&criteria.SearchQuery, "search", "", "Case-insensitive text to find in name or description")
	f.BoolVar(&all, "all", false, "Show every match instead of the first page")
	return cmd
}

func formatProducts(v listView) string {
	if v.Matched == 0 {
		return "No products found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-24s  %-11s  %9s  %5s  %s\n", "ID", "NAME", "CATEGORY", "PRICE", "STOCK", "SIZES")
	for _, p := range v.Products {
		fmt.Fprintf(&b, "%-36s  %-24s  %-11s  %9.2f  %5d  %s\n",
			p.ID, truncate(p.Name, 24), p.Category, p.Price, p.Stock, strings.Join(p.Sizes, ","))
		if p.ImageURL != "" {
			fmt.Fprintf(&b, "%-36s  image: %s\n", "", p.ImageURL)
		}
	}
	if v.Shown < v.Matched {
		fmt.Fprintf(&b, "Showing %d of %d products. Use --all to see more.", v.Shown, v.Matched)
	} else {
		fmt.Fprintf(&b, "%d products.", v.Shown)
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func openImage(path string) (*domain.Attachment, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &userError{msg: fmt.Sprintf("Cannot read image %s.", path), cause: err}
	}
	return &domain.Attachment{Filename: path, Content: f}, func() { _ = f.Close() }, nil
}

func newProductsCreateCmd(opts *options) *cobra.Command {
	var draft domain.ProductDraft
	var image string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attachment, closeImage, err := openImage(image)
			if err != nil {
				return err
			}
			defer closeImage()

			if err := opts.app.Catalog.Create(cmd.Context(), draft, attachment); err != nil {
				return catalogError(opts, err, service.MsgCreateFailed)
			}
			opts.print(cmd.OutOrStdout(), map[string]string{"status": "created", "name": draft.Name}, "Product added successfully.")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Name, "name", "", "Product name")
	f.StringVar(&draft.Description, "description", "", "Product description")
	f.Float64Var(&draft.Price, "price", 0, "Price, greater than zero")
	f.StringVar(&draft.Category, "category", "", "Category ("+strings.Join(domain.Categories, ", ")+")")
	f.IntVar(&draft.Stock, "stock", 0, "Units in stock")
	f.StringSliceVar(&draft.Sizes, "size", nil, "Available sizes ("+strings.Join(domain.Sizes, ", ")+"), repeatable")
	f.StringVar(&image, "image", "", "Path of an image to upload")
	return cmd
}

func newProductsUpdateCmd(opts *options) *cobra.Command {
	var (
		name, category string
		price          float64
		stock          int
		image          string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a product (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ProductPatch
			f := cmd.Flags()
			if f.Changed("name") {
				patch.Name = &name
			}
			if f.Changed("category") {
				patch.Category = &category
			}
			if f.Changed("price") {
				patch.Price = &price
			}
			if f.Changed("stock") {
				patch.Stock = &stock
			}

			attachment, closeImage, err := openImage(image)
			if err != nil {
				return err
			}
			defer closeImage()

			opts.app.Catalog.OnReload(func() {
				opts.app.Logger.Debug().Str("id", args[0]).Msg("reloading catalog view")
			})
			if err := opts.app.Catalog.Update(cmd.Context(), args[0], patch, attachment); err != nil {
				return catalogError(opts, err, service.MsgUpdateFailed)
			}
			if st := opts.app.Catalog.State(); st.LastError != "" {
				opts.app.Logger.Warn().Str("error", st.LastError).Msg("product updated but catalog reload failed")
			}
			opts.print(cmd.OutOrStdout(), map[string]string{"status": "updated", "id": args[0]}, "Product updated successfully.")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "New name")
	f.StringVar(&category, "category", "", "New category")
	f.Float64Var(&price, "price", 0, "New price")
	f.IntVar(&stock, "stock", 0, "New stock")
	f.StringVar(&image, "image", "", "Path of a replacement image")
	return cmd
}

func newProductsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a product (admin only)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			catalog := opts.app.Catalog

			if opts.app.Gate.MayMutateCatalog(ctx) {
				catalog.FetchAll(ctx)
			}
			if err := catalog.Remove(ctx, args[0]); err != nil {
				return catalogError(opts, err, service.MsgDeleteFailed)
			}
			opts.print(cmd.OutOrStdout(), map[string]string{"status": "deleted", "id": args[0]}, "Product deleted.")
			return nil
		},
	}
}
