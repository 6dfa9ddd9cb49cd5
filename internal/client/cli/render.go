package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"profilehub/internal/client/models"
	"profilehub/internal/client/state"
)

func renderPage(w io.Writer, page state.DirectoryPage) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tINTERESTS")
	for _, u := range page.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, strings.Join(u.Interests, ", "))
	}
	tw.Flush()

	fmt.Fprintf(w, "Page %d of %d (%d users total)\n", page.CurrentPage, page.Pages, page.Total)
}

func renderUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "ID:        %d\n", u.ID)
	fmt.Fprintf(w, "Name:      %s\n", u.FullName)
	fmt.Fprintf(w, "Email:     %s\n", u.Email)
	if u.PhoneNumber != "" {
		fmt.Fprintf(w, "Phone:     %s\n", u.PhoneNumber)
	}
	if !u.DateOfBirth.IsZero() {
		fmt.Fprintf(w, "Born:      %s\n", u.DateOfBirth.String())
	}
	if u.Gender != "" {
		fmt.Fprintf(w, "Gender:    %s\n", u.Gender)
	}
	if len(u.Interests) > 0 {
		fmt.Fprintf(w, "Interests: %s\n", strings.Join(u.Interests, ", "))
	}
	if u.Bio != "" {
		fmt.Fprintf(w, "Bio:       %s\n", u.Bio)
	}
}
