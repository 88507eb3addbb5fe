package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"orderlist/internal/config"
	"orderlist/internal/terminal"
	"orderlist/pkg/printer"
)

// session holds the per-run terminal state shared across commands.
type session struct {
	client    *terminal.Client
	draft     *terminal.Draft
	submitter *terminal.Submitter
	history   *terminal.History
	scanner   *terminal.Scanner
	printer   printer.Printer
	width     int

	info        terminal.CustomerInfo
	lastReceipt []byte
}

func main() {
	cfg := config.Load()

	device, err := printer.New(cfg.Printer.Type, cfg.Printer.Device, cfg.Printer.Address)
	if err != nil {
		log.Fatalf("Failed to configure printer: %v", err)
	}

	client := terminal.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout)
	s := &session{
		client:    client,
		draft:     terminal.NewDraft(client),
		submitter: terminal.NewSubmitter(client),
		history:   terminal.NewHistory(client, cfg.Client.PageSize),
		printer:   device,
		width:     cfg.Printer.Width,
	}

	s.draft.OnRefocus = func() {
		fmt.Print("barcode> ")
	}

	s.scanner = terminal.NewScanner(func(barcode string) {
		if err := s.draft.StageBarcode(context.Background(), barcode); err != nil {
			fmt.Println("!", err)
			return
		}
		printPending(s.draft)
	})

	s.info.Username = os.Getenv("USER")
	if s.info.Username == "" {
		s.info.Username = "user1"
	}

	ctx := context.Background()
	if name, err := client.LatestInventory(ctx); err == nil {
		fmt.Println("Latest inventory:", name)
	} else if errors.Is(err, terminal.ErrNotFound) {
		fmt.Println("No inventory uploaded yet.")
	}

	fmt.Println("Order terminal ready. Type 'help' for commands.")
	in := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		s.run(ctx, line, in)
		fmt.Print("> ")
	}
	if err := in.Err(); err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
}

func (s *session) run(ctx context.Context, line string, in *bufio.Scanner) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "help":
		printHelp()

	case "creator":
		s.info.CreatedBy = rest
	case "customer":
		s.info.CustomerName = rest
	case "phone":
		s.info.CustomerPhone = rest

	case "scan":
		s.scanner.Open()
		s.scanner.Deliver(rest, nil)
		s.scanner.Close()
		if err := s.scanner.Err(); err != nil {
			fmt.Println("!", err)
		}

	case "code":
		if err := s.draft.StageBarcode(ctx, rest); err != nil {
			fmt.Println("!", err)
			return
		}
		printPending(s.draft)

	case "qty":
		quantity, err := strconv.Atoi(rest)
		if err != nil {
			fmt.Println("!", terminal.ErrInvalidQuantity)
			return
		}
		if err := s.draft.SetPendingQuantity(quantity); err != nil {
			fmt.Println("!", err)
		}

	case "price":
		price, err := decimal.NewFromString(rest)
		if err != nil {
			fmt.Println("!", terminal.ErrInvalidPrice)
			return
		}
		if err := s.draft.SetPendingPrice(price); err != nil {
			fmt.Println("!", err)
		}

	case "add":
		item, err := s.draft.CommitPending()
		fmt.Println()
		if err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Printf("added %s x%d = %s (vat %s)\n", item.Barcode, item.Quantity, item.Total, item.VAT)

	case "edit":
		if len(args) < 3 {
			fmt.Println("usage: edit <n> qty|price <value>")
			return
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("!", terminal.ErrNoSuchItem)
			return
		}
		switch args[1] {
		case "qty":
			err = s.draft.EditQuantity(index-1, args[2])
		case "price":
			err = s.draft.EditPrice(index-1, args[2])
		default:
			fmt.Println("usage: edit <n> qty|price <value>")
			return
		}
		if err != nil {
			fmt.Println("!", err)
		}

	case "rm":
		index, err := strconv.Atoi(rest)
		if err != nil {
			fmt.Println("!", terminal.ErrNoSuchItem)
			return
		}
		if err := s.draft.RemoveItem(index - 1); err != nil {
			fmt.Println("!", err)
		}

	case "items":
		printItems(s.draft)

	case "submit":
		items := s.draft.Items()
		filename, err := s.submitter.Submit(ctx, s.draft, s.info)
		if err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Println("Order saved as", filename)
		s.lastReceipt = terminal.RenderReceipt(s.info, items, filename, s.width)
		if err := s.history.Refresh(ctx); err != nil {
			fmt.Println("!", err)
		}

	case "print":
		if s.lastReceipt == nil {
			fmt.Println("No submitted order to print yet.")
			return
		}
		if err := s.printer.Print(s.lastReceipt); err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Println("Receipt sent to printer.")

	case "orders":
		if err := s.history.Refresh(ctx); err != nil {
			fmt.Println("!", err)
			return
		}
		printRecords(s.history)

	case "next":
		if err := s.history.NextPage(ctx); err != nil {
			fmt.Println("!", err)
			return
		}
		printRecords(s.history)

	case "prev":
		if err := s.history.PrevPage(ctx); err != nil {
			fmt.Println("!", err)
			return
		}
		printRecords(s.history)

	case "find":
		filter := terminal.SearchFilter{}
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok {
				continue
			}
			switch key {
			case "customer":
				filter.Customer = value
			case "creator":
				filter.CreatedBy = value
			case "date":
				filter.Date = value
			}
		}
		s.history.SetFilter(filter)
		if err := s.history.Refresh(ctx); err != nil {
			fmt.Println("!", err)
			return
		}
		printRecords(s.history)

	case "clearfind":
		s.history.ClearFilter()
		if err := s.history.Refresh(ctx); err != nil {
			fmt.Println("!", err)
			return
		}
		printRecords(s.history)

	case "view":
		detail, err := s.history.Preview(ctx, rest)
		if err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Println(strings.Join(detail.Headers, " | "))
		for _, item := range detail.Items {
			fmt.Printf("%s | %s | %d | %s | %s | %s\n",
				item.Barcode, item.Name, item.Quantity, item.Price, item.Total, item.VAT)
		}

	case "closeview":
		s.history.ClosePreview()

	case "get":
		data, err := s.history.Download(ctx, rest)
		if err != nil {
			fmt.Println("!", err)
			return
		}
		if err := os.WriteFile(rest, data, 0o644); err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Printf("Saved %s (%d bytes)\n", rest, len(data))

	case "del":
		err := s.history.Delete(ctx, rest, func(filename string) bool {
			fmt.Printf("Delete %s? [y/N] ", filename)
			if !in.Scan() {
				return false
			}
			return strings.EqualFold(strings.TrimSpace(in.Text()), "y")
		})
		if err != nil {
			fmt.Println("!", err)
			return
		}
		printRecords(s.history)

	case "upload":
		f, err := os.Open(rest)
		if err != nil {
			fmt.Println("!", err)
			return
		}
		defer f.Close()
		result, err := s.client.UploadInventory(ctx, rest, f)
		if err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Printf("Inventory uploaded: %d items (%s)\n", result.Count, result.SavedAs)

	case "latest":
		name, err := s.client.LatestInventory(ctx)
		if err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Println("Latest inventory:", name)

	default:
		fmt.Println("Unknown command; type 'help'")
	}
}

func printPending(draft *terminal.Draft) {
	pending := draft.Pending()
	if err := draft.FieldError(); err != nil {
		fmt.Println("!", err)
		return
	}
	price := "-"
	if pending.Price != nil {
		price = pending.Price.StringFixed(2)
	}
	fmt.Printf("staged: %s  %s  qty %d  price %s\n", pending.Barcode, pending.Name, pending.Quantity, price)
}

func printItems(draft *terminal.Draft) {
	items := draft.Items()
	if len(items) == 0 {
		fmt.Println("(empty order)")
		return
	}
	total := decimal.Zero
	vat := decimal.Zero
	for i, item := range items {
		fmt.Printf("%2d. %-14s %-24s x%-3d %8s %8s %8s\n",
			i+1, item.Barcode, item.Name, item.Quantity,
			item.UnitPrice.StringFixed(2), item.Total.StringFixed(2), item.VAT.StringFixed(2))
		total = total.Add(item.Total)
		vat = vat.Add(item.VAT)
	}
	fmt.Printf("    order total %s, vat %s\n", total.StringFixed(2), vat.StringFixed(2))
}

func printRecords(history *terminal.History) {
	records := history.Records()
	if len(records) == 0 {
		fmt.Println("(no orders)")
		return
	}
	for _, record := range records {
		fmt.Printf("%s | %s | %s | %s | %s\n",
			record.Filename, record.OrderDate.Format("2006-01-02"),
			record.CustomerName, record.CreatedBy, record.OrderTotal.StringFixed(2))
	}
	if history.Filter().Empty() {
		fmt.Printf("page %d  next:%v prev:%v\n", history.Page(), history.HasNext(), history.HasPrev())
	}
}

func printHelp() {
	fmt.Println(`order entry:
  creator|customer|phone <text>   set order header fields
  scan <code> | code <code>       stage a barcode (scan / manual entry)
  qty <n>  price <p>              adjust the staged entry
  add                             commit the staged entry
  edit <n> qty|price <value>      edit a line item
  rm <n>                          remove a line item
  items                           show the draft
  submit                          save the order
  print                           print a receipt for the last order
history:
  orders | next | prev            paged listing
  find customer=.. creator=.. date=YYYY-MM-DD
  clearfind                       back to page 1, unfiltered
  view <file> | closeview         preview an order
  get <file>                      download the artifact
  del <file>                      delete (asks for confirmation)
inventory:
  upload <path.xlsx> | latest
quit`)
}
