// dairycli is the terminal front-end: the same engine as the HTTP server,
// driven by an interactive menu.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"dairypos/billing"
	"dairypos/config"
	"dairypos/db"
	"dairypos/engine"
)

var reader = bufio.NewReader(os.Stdin)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	receipts, err := billing.NewPDF(cfg.BillsDir)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.New(store, receipts, logger)
	ctx := context.Background()

	for {
		fmt.Println("\n1: Add Product")
		fmt.Println("2: Delete Product")
		fmt.Println("3: Sell Product")
		fmt.Println("4: View Stock")
		fmt.Println("5: View Sell History")
		fmt.Println("X: Exit")
		choice := readLine("Enter choice: ")

		switch choice {
		case "1":
			name := readLine("Enter Name: ")
			quantity := readInt("Enter Quantity: ")
			price := readFloat("Enter Price: ")

			product, err := eng.AddProduct(ctx, name, quantity, price)
			if err != nil {
				fmt.Printf("Error adding product: %v\n", err)
				continue
			}
			fmt.Printf("Added Product: %+v\n", *product)

		case "2":
			id := readInt64("Enter Product ID to delete: ")
			if err := eng.DeleteProduct(ctx, id); err != nil {
				fmt.Printf("Error deleting product: %v\n", err)
				continue
			}
			fmt.Println("Product deleted successfully.")

		case "3":
			customer := readLine("Enter Customer Name: ")
			gstin := readLine("Enter GSTIN: ")
			id := readInt64("Enter Product ID: ")
			quantity := readInt("Enter Quantity: ")

			result, err := eng.Sell(ctx, customer, gstin, id, quantity)
			if err != nil {
				fmt.Printf("Sale failed: %v\n", err)
				continue
			}
			fmt.Println(result.Bill)
			if result.ReceiptErr != nil {
				fmt.Printf("Warning: %v\n", result.ReceiptErr)
			} else {
				fmt.Printf("Bill saved as '%s'.\n", result.Sale.BillFilename)
			}

		case "4":
			products, err := eng.ListProducts(ctx)
			if err != nil {
				fmt.Printf("Error retrieving stock: %v\n", err)
				continue
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tName\tQuantity\tPrice")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\n", p.ID, p.Name, p.Quantity, p.Price)
			}
			w.Flush()

		case "5":
			sales, err := eng.ListSales(ctx)
			if err != nil {
				fmt.Printf("Error retrieving sales: %v\n", err)
				continue
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCustomer\tGSTIN\tProduct ID\tQuantity\tTotal\tBill")
			for _, s := range sales {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%.2f\t%s\n",
					s.ID, s.CustomerName, s.GSTIN, s.ProductID, s.Quantity, s.TotalPrice, s.BillFilename)
			}
			w.Flush()

		case "X", "x":
			fmt.Println("Exiting...")
			return

		default:
			fmt.Println("Invalid choice. Please enter a valid option.")
		}
	}
}

func readLine(caption string) string {
	fmt.Print(caption)
	text, _ := reader.ReadString('\n')
	return strings.TrimSpace(text)
}

func readInt(caption string) int {
	n, _ := strconv.Atoi(readLine(caption))
	return n
}

func readInt64(caption string) int64 {
	n, _ := strconv.ParseInt(readLine(caption), 10, 64)
	return n
}

func readFloat(caption string) float64 {
	f, _ := strconv.ParseFloat(readLine(caption), 64)
	return f
}
