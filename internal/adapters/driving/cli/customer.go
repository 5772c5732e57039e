package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

var customerJSON bool

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Look up customer records directly",
}

var customerProfileCmd = &cobra.Command{
	Use:   "profile [name]",
	Short: "Show a customer's profile and orders",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerProfile,
}

var customerTicketsCmd = &cobra.Command{
	Use:   "tickets [name]",
	Short: "Show a customer's support ticket history",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerTickets,
}

var customerSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search customers by name, email or phone",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCustomerSearch,
}

func init() {
	customerCmd.PersistentFlags().BoolVar(&customerJSON, "json", false, "output as JSON")
	customerCmd.AddCommand(customerProfileCmd)
	customerCmd.AddCommand(customerTicketsCmd)
	customerCmd.AddCommand(customerSearchCmd)
	rootCmd.AddCommand(customerCmd)
}

func runCustomerProfile(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	customer, err := directoryService.Profile(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("customer %q not found", args[0])
		}
		return fmt.Errorf("looking up customer: %w", err)
	}

	if customerJSON {
		return outputJSON(cmd, customer)
	}

	cmd.Printf("%s (#%d)\n", customer.Name, customer.ID)
	cmd.Printf("  Email:          %s\n", customer.Email)
	cmd.Printf("  Phone:          %s\n", customer.Phone)
	cmd.Printf("  Account Status: %s\n", customer.AccountStatus)
	cmd.Printf("  Account Type:   %s\n", customer.AccountType)
	cmd.Printf("  Signup Date:    %s\n", customer.SignupDate.Format(time.DateOnly))
	cmd.Printf("  Total Orders:   %d\n", customer.TotalOrders)
	cmd.Printf("  Lifetime Value: $%.2f\n", customer.LifetimeValue)

	if len(customer.Orders) > 0 {
		cmd.Println()
		cmd.Printf("Orders (%d):\n", len(customer.Orders))
		for _, o := range customer.Orders {
			cmd.Printf("  #%d %s $%.2f %s\n", o.ID, o.OrderDate.Format(time.DateOnly), o.Amount, o.Status)
		}
	}
	return nil
}

func runCustomerTickets(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	history, err := directoryService.Tickets(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("customer %q not found", args[0])
		}
		return fmt.Errorf("looking up tickets: %w", err)
	}

	if customerJSON {
		return outputJSON(cmd, history)
	}

	cmd.Printf("Support tickets for %s (%d):\n", history.CustomerName, history.Total)
	if history.Total == 0 {
		cmd.Println("  (none)")
		return nil
	}
	for _, t := range history.Tickets {
		cmd.Printf("  #%d [%s] %s (priority: %s, category: %s)\n",
			t.ID, t.Status, t.Title, t.Priority, t.Category)
	}
	return nil
}

func runCustomerSearch(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	customers, err := directoryService.SearchCustomers(context.Background(), query)
	if err != nil {
		return fmt.Errorf("searching customers: %w", err)
	}

	if customerJSON {
		return outputJSON(cmd, customers)
	}

	if len(customers) == 0 {
		cmd.Println("No customers found.")
		return nil
	}

	for _, c := range customers {
		cmd.Printf("  #%d %s <%s> %s\n", c.ID, c.Name, c.Email, c.AccountStatus)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
