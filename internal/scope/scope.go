// Package scope holds the ŠKODA Lifestyle e-commerce integration one-page
// report content.
package scope

import "scopereport/domain/document"

const (
	Title    = "ŠKODA Lifestyle — E-Commerce Integration · One-Page Report"
	Subtitle = "Phase 1 · Version 1.0 · Confidential"
	Footer   = "ŠKODA AUTO India · ŠKODA Lifestyle E-Commerce Integration · Phase 1 SOW"
	Creator  = "ŠKODA Lifestyle E-Commerce Integration"
)

// Section headings, in document order.
const (
	HeadingBuild       = "What We Need to Build"
	HeadingFlow        = "End-to-End Flow"
	HeadingAssumptions = "Assumptions"
	HeadingOutOfScope  = "Out of Scope (Phase 1)"
	HeadingInputs      = "Client Inputs Required at Kick-off"
	HeadingDeliverable = "Deliverables"
)

// DefaultFileName is where the report lands when no output path is given.
const DefaultFileName = "SKODA-LIFESTYLE-ONE-PAGE-REPORT.docx"

var buildHeaders = []string{"Area", "Scope"}

var buildRows = [][]string{
	{"Front-end", "Product listing (grid, image, name, price, stock status), product detail (gallery, specs, quantity, Add to Cart), cart (summary, quantity controls, totals, checkout CTA), checkout (Full Name, Mobile, Email, Shipping Address, City, State, Pincode — with validation). Design reference: Porsche Shop (https://shop.porsche.com/us/en-US)."},
	{"Payments", "BillDesk integration (server-side): unique Order ID, secure hash (server-only), redirect to BillDesk hosted page, callback handling, response validation, order status update. No card/sensitive data stored. Test + Production."},
	{"Inventory", "Centralised model: Product ID, SKU, Price, Available Stock, Status (Active/Out of Stock). Deduct stock only after successful payment; oversell protection; out-of-stock = no Add to Cart, no checkout."},
	{"CRM", "Zoho: auto-create/update order on successful payment. Fields: Customer Name, Mobile, Email, Shipping Address, Products, Quantity, Order ID, Amount Paid, Payment Status, Order Date/Time. Deduplication, error logging, optional retry."},
	{"Admin", "Web dashboard: view/filter orders, update stock, override status, CSV export, payment status summary."},
	{"Security", "Hash server-side only; credentials in env; SSL on payment pages; audit logs for order/payment; no card storage."},
}

const flow = `Product listing → Product detail → Add to Cart → Cart → Checkout (customer + address)
       → Stock check → BillDesk redirect → Payment (hosted) → Callback
       → Validate response → Update order status → Deduct inventory
       → Create/update Zoho order → Confirmation to customer`

var assumptions = []string{
	"Client is already onboarded with BillDesk; Test and Production credentials will be provided.",
	"Single centralised inventory (no dealer/multi-warehouse in Phase 1).",
	"Zoho module name, field mapping, and API credentials will be provided at kick-off.",
	"Design and UX will follow Porsche Shop as reference; no separate design phase specified.",
	`Retry for failed Zoho sync is "if feasible within scope."`,
	"Server environment, deployment access, SSL, and domain are client-provided.",
}

var inputHeaders = []string{"From", "Items"}

var inputRows = [][]string{
	{"BillDesk", "Merchant ID, Secret Key, Test credentials, Integration docs, Approved callback URL"},
	{"Zoho", "API credentials, Order module name, Field mapping sheet"},
	{"IT", "Server env details, Deployment access, SSL confirmation, Domain details"},
}

// Build assembles the one-page report.
func Build() *document.Document {
	doc := document.New(Title)
	doc.Creator = Creator

	doc.AddBlank()
	title := doc.AddParagraph("")
	title.Alignment = document.AlignCenter
	r := title.AddRun(Title)
	r.Bold = true
	r.Size = document.Pt(16)
	doc.AddBlank()
	doc.AddParagraph(Subtitle).Alignment = document.AlignCenter
	doc.AddBlank()
	doc.AddRule()
	doc.AddBlank()

	doc.AddHeading(HeadingBuild, 1)
	doc.AddTable(buildHeaders, buildRows)
	doc.AddBlank()

	doc.AddHeading(HeadingFlow, 1)
	p := doc.AddPreformatted(flow)
	p.Format.LeftIndent = document.Inches(0.25)
	p.Format.SpaceAfter = document.Pt(6)
	for _, run := range p.Runs {
		run.Size = document.Pt(10)
	}
	doc.AddStyledParagraph("Payment statuses: Pending → Successful / Failed (order and UI updated accordingly).", true)
	doc.AddStyledParagraph("Out-of-stock: Product hidden/disabled for Add to Cart; checkout blocked if stock depletes between cart and payment.", true)
	doc.AddBlank()

	doc.AddHeading(HeadingAssumptions, 1)
	for _, a := range assumptions {
		doc.AddBullet(a)
	}
	doc.AddBlank()

	doc.AddHeading(HeadingOutOfScope, 1)
	doc.AddStyledParagraph("Dealer-level inventory · ERP integration · Multi-warehouse · Automated refunds · Advanced discount/coupon engine.", false)
	doc.AddBlank()

	doc.AddHeading(HeadingInputs, 1)
	doc.AddTable(inputHeaders, inputRows)
	doc.AddBlank()

	doc.AddHeading(HeadingDeliverable, 1)
	doc.AddStyledParagraph("Functional e-commerce journey · BillDesk (Test & Prod) · Zoho CRM integration · Inventory module · Admin dashboard · UAT & go-live support · Basic technical documentation.", false)
	doc.AddBlank()
	doc.AddRule()
	doc.AddBlank()

	footer := doc.AddParagraph(Footer)
	footer.Alignment = document.AlignCenter
	for _, run := range footer.Runs {
		run.Italic = true
		run.Size = document.Pt(9)
	}

	return doc
}
