// =============================================================================
// Travel Voucher Generator - Voucher Rendering
// =============================================================================
//
// Renders one voucher document per service entity. Documents are plain text
// built from a single template frame; the per-category builders only decide
// which header fields and service lines the frame shows. The office
// converter downstream turns them into PDF pages.
//
// =============================================================================

package voucher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
	"github.com/PierreFinestTravel/Vouchersystem/pkg/utils"
)

const (
	dateLong  = "02 January 2006"
	dateShort = "02.01.2006"

	supplierFilenameLen = 50
)

// boardBasisText expands board basis codes to guest-facing wording.
var boardBasisText = map[string]string{
	"RO":  "Room Only",
	"BB":  "Bed & Breakfast",
	"HB":  "Half Board",
	"FB":  "Full Board",
	"FB+": "Full Board Plus - Dinner, Bed, Breakfast, Lunch and Activities",
	"AI":  "All Inclusive",
}

// BoardBasis returns the guest-facing text for a board code, or the code
// itself when it is not a known abbreviation.
func BoardBasis(code string) string {
	if text, ok := boardBasisText[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return text
	}
	return code
}

// =============================================================================
// TEMPLATE
// =============================================================================

// voucherData is the frame every voucher shares.
type voucherData struct {
	Supplier   types.ContactInfo
	Travellers string
	RefNo      string
	Group      string

	CheckIn  string
	CheckOut string
	Nights   int

	Date     string
	TimeText string

	// Services are pre-formatted lines; empty strings render as blank
	// separator lines.
	Services []string
	Notes    string
}

var voucherTemplate = template.Must(template.New("voucher").Parse(
	`{{.Supplier.DisplayName}}
{{if .Supplier.Address}}{{.Supplier.Address}}
{{end}}{{if .Supplier.Phone}}Tel: {{.Supplier.Phone}}
{{end}}{{if .Supplier.GPS}}GPS: {{.Supplier.GPS}}
{{end}}
TRAVELLERS: {{.Travellers}}

REF NO: {{.RefNo}}
{{if .Group}}
GROUP:
{{.Group}}
{{end}}{{if .CheckIn}}
CHECK IN: {{.CheckIn}}    TIME: 14h00
CHECK OUT: {{.CheckOut}}    TIME: 11h00    NIGHTS: {{.Nights}}
{{end}}{{if .Date}}
DATE: {{.Date}}
{{end}}{{if .TimeText}}
TIME: {{.TimeText}}
{{end}}
Included Services:
{{range .Services}}{{.}}
{{end}}{{if .Notes}}
Notes:
{{.Notes}}
{{end}}
All additional services are for guest's own account
`))

// =============================================================================
// RENDERER
// =============================================================================

// Renderer writes voucher documents into an output directory.
type Renderer struct {
	outDir string
}

// NewRenderer returns a renderer writing into outDir.
func NewRenderer(outDir string) *Renderer {
	return &Renderer{outDir: outDir}
}

// RenderAll renders every voucher for a parsed document and returns the
// written files tagged for downstream sorting.
//
// European trips skip activity, restaurant and car rental vouchers: those
// services are booked directly by the partner agencies there.
func (r *Renderer) RenderAll(doc *types.ParsedDocument, travellers, refNo, groupText string) ([]types.RenderedDoc, error) {
	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create voucher directory: %w", err)
	}

	suppressed := doc.Region == types.RegionEU
	var rendered []types.RenderedDoc

	for i, hotel := range doc.Hotels {
		path, err := r.write(types.KindHotel, i, hotel.Supplier, buildHotel(hotel, travellers, refNo, groupText))
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, types.RenderedDoc{Path: path, Kind: types.KindHotel, Date: hotel.CheckIn})
	}

	for i, transfer := range doc.Transfers {
		path, err := r.write(types.KindTransfer, i, transfer.Supplier, buildTransfer(transfer, travellers, refNo))
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, types.RenderedDoc{Path: path, Kind: types.KindTransfer, Date: earliestLeg(transfer)})
	}

	if !suppressed {
		for i, car := range doc.CarRentals {
			path, err := r.write(types.KindCarRental, i, car.Supplier, buildCarRental(car, travellers, refNo))
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, types.RenderedDoc{Path: path, Kind: types.KindCarRental, Date: car.PickupDate})
		}

		for i, activity := range doc.Activities {
			path, err := r.write(types.KindActivity, i, activity.Supplier, buildActivity(activity, travellers, refNo))
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, types.RenderedDoc{Path: path, Kind: types.KindActivity, Date: earliestEntry(activity)})
		}

		for i, restaurant := range doc.Restaurants {
			path, err := r.write(types.KindRestaurant, i, restaurant.Supplier, buildRestaurant(restaurant, travellers, refNo))
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, types.RenderedDoc{Path: path, Kind: types.KindRestaurant, Date: restaurant.Date})
		}
	} else if len(doc.CarRentals)+len(doc.Activities)+len(doc.Restaurants) > 0 {
		log.Info().
			Int("skipped", len(doc.CarRentals)+len(doc.Activities)+len(doc.Restaurants)).
			Msg("european trip, skipping activity, restaurant and car rental vouchers")
	}

	for i, golf := range doc.Golf {
		path, err := r.write(types.KindGolf, i, golf.Supplier, buildGolf(golf, travellers, refNo))
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, types.RenderedDoc{Path: path, Kind: types.KindGolf, Date: golf.Date})
	}

	return rendered, nil
}

// write renders the frame into "<kind>_<n>_<supplier>.txt".
func (r *Renderer) write(kind types.VoucherKind, idx int, supplier string, data voucherData) (string, error) {
	name := fmt.Sprintf("%s_%d_%s.txt", kind, idx+1, utils.SafeFilename(supplier, supplierFilenameLen))
	path := filepath.Join(r.outDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create voucher %s: %w", name, err)
	}
	defer f.Close()

	if err := voucherTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render voucher %s: %w", name, err)
	}

	log.Info().Str("voucher", name).Msg("voucher rendered")
	return path, nil
}

// =============================================================================
// PER-CATEGORY BUILDERS
// =============================================================================

func bullet(line string) string {
	return "  - " + line
}

// buildHotel renders a stay. Group bookings carry their room label in
// groupText so the property knows which voucher belongs to which room.
func buildHotel(hotel types.HotelStay, travellers, refNo, groupText string) voucherData {
	var services []string

	if hotel.RoomType != "" {
		services = append(services, bullet("Accommodation Type: X1 "+hotel.RoomType+" - DBL"))
	} else {
		services = append(services, bullet("Accommodation Type: Double Room"))
	}
	if hotel.Board != "" {
		services = append(services, bullet("Board Basis: "+BoardBasis(hotel.Board)))
	}
	if len(hotel.GameDrives) > 0 {
		services = append(services, "", bullet("Activities:"))
		for _, drive := range hotel.GameDrives {
			services = append(services, "      "+drive)
		}
	}

	return voucherData{
		Supplier:   hotel.Contact,
		Travellers: travellers,
		RefNo:      refNo,
		Group:      groupText,
		CheckIn:    hotel.CheckIn.Format(dateLong),
		CheckOut:   hotel.CheckOut.Format(dateLong),
		Nights:     hotel.Nights,
		Services:   services,
		Notes:      hotel.Notes,
	}
}

func buildTransfer(transfer types.TransferVoucher, travellers, refNo string) voucherData {
	var services []string
	var notes []string

	for _, leg := range transfer.Legs {
		pickup := "Pick Up: " + leg.Date.Format(dateShort)
		if leg.PickupPoint != "" {
			pickup += " - " + leg.PickupPoint
		}
		if leg.PickupTime != "" {
			pickup += " @ " + leg.PickupTime
		}
		if leg.FlightNumber != "" {
			pickup += " (Flight " + leg.FlightNumber + ")"
		}
		if strings.Contains(strings.ToLower(leg.PickupPoint), "airport") {
			pickup += " - Your driver will meet you in the arrivals hall with your name board."
		}
		services = append(services, bullet(pickup))

		if leg.DropoffPoint != "" {
			services = append(services, bullet("Drop Off: "+leg.DropoffPoint))
		}
		services = append(services, "")

		if leg.Notes != "" {
			notes = append(notes, leg.Notes)
		}
	}

	return voucherData{
		Supplier:   transfer.Contact,
		Travellers: travellers,
		RefNo:      refNo,
		Services:   services,
		Notes:      strings.Join(notes, "\n"),
	}
}

func buildCarRental(car types.CarRentalVoucher, travellers, refNo string) voucherData {
	group := strings.Join([]string{
		car.CarGroup,
		"Unlimited Mileage",
		"Zero Excess",
		"Including glass and tire insurance",
		"Full to Full Fuel Policy",
	}, "\n")

	services := []string{
		bullet("Pick Up: " + car.PickupDate.Format(dateShort) + " - " + car.PickupLocation),
		bullet("Drop Off: " + car.DropoffDate.Format(dateShort) + " - " + car.DropoffLocation),
	}

	return voucherData{
		Supplier:   car.Contact,
		Travellers: travellers,
		RefNo:      refNo,
		Group:      group,
		Services:   services,
	}
}

func buildActivity(activity types.ActivityVoucher, travellers, refNo string) voucherData {
	data := voucherData{
		Supplier:   activity.Contact,
		Travellers: travellers,
		RefNo:      refNo,
	}

	if len(activity.Entries) == 1 {
		entry := activity.Entries[0]
		data.Services = []string{bullet(entry.Name)}
		data.Date = entry.Date.Format(dateLong)
		data.TimeText = entry.Time
		data.Notes = entry.Notes
		return data
	}

	var notes []string
	for _, entry := range activity.Entries {
		line := entry.Date.Format(dateShort)
		if entry.Time != "" {
			line += " - " + entry.Time
		}
		line += " - " + entry.Name
		data.Services = append(data.Services, bullet(line))
		if entry.Notes != "" {
			notes = append(notes, entry.Notes)
		}
	}
	data.Notes = strings.Join(notes, "\n")
	return data
}

func buildRestaurant(restaurant types.RestaurantVoucher, travellers, refNo string) voucherData {
	service := restaurant.Notes
	if service == "" {
		service = "Dinner reservation"
	}

	return voucherData{
		Supplier:   restaurant.Contact,
		Travellers: travellers,
		RefNo:      refNo,
		Date:       restaurant.Date.Format(dateLong),
		TimeText:   restaurant.Time,
		Services:   []string{bullet(service)},
	}
}

func buildGolf(golf types.GolfVoucher, travellers, refNo string) voucherData {
	services := []string{bullet("Golf Course: " + golf.Course)}
	if golf.Cart != "" {
		services = append(services, bullet("Cart: "+golf.Cart))
	}
	if golf.RentalSet != "" {
		services = append(services, bullet("Rental Set: "+golf.RentalSet))
	}

	timeText := ""
	if golf.TeeTime != "" {
		timeText = "Tee Time: " + golf.TeeTime
	}

	return voucherData{
		Supplier:   golf.Contact,
		Travellers: travellers,
		RefNo:      refNo,
		Date:       golf.Date.Format(dateLong),
		TimeText:   timeText,
		Services:   services,
		Notes:      golf.Notes,
	}
}

// =============================================================================
// REPRESENTATIVE DATES
// =============================================================================

func earliestLeg(transfer types.TransferVoucher) time.Time {
	if len(transfer.Legs) == 0 {
		return time.Now()
	}
	earliest := transfer.Legs[0].Date
	for _, leg := range transfer.Legs[1:] {
		if leg.Date.Before(earliest) {
			earliest = leg.Date
		}
	}
	return earliest
}

func earliestEntry(activity types.ActivityVoucher) time.Time {
	if len(activity.Entries) == 0 {
		return time.Now()
	}
	earliest := activity.Entries[0].Date
	for _, entry := range activity.Entries[1:] {
		if entry.Date.Before(earliest) {
			earliest = entry.Date
		}
	}
	return earliest
}
