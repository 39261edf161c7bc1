package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

func renderCart(w io.Writer, cart domain.Cart) error {
	if len(cart) == 0 {
		_, err := fmt.Fprintln(w, "cart is empty")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tAMOUNT\tPRICE\tSUBTOTAL")
	for _, p := range cart {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", p.ID, p.Name, p.Amount, p.Price.StringFixed(2), p.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "\t%d item(s)\t\t\t%s\n", cart.ItemCount(), cart.Total().StringFixed(2))
	return tw.Flush()
}
