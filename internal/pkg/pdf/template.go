// internal/pkg/pdf/template.go
package pdf

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #1f2937; }
        .header { display: flex; justify-content: space-between; border-bottom: 3px solid #7c3aed; padding-bottom: 16px; margin-bottom: 24px; }
        .brand h1 { margin: 0; color: #7c3aed; }
        .meta { text-align: right; }
        .meta .title { font-size: 28px; font-weight: bold; letter-spacing: 2px; }
        .customer { margin-bottom: 24px; }
        .badge { display: inline-block; padding: 3px 8px; border-radius: 4px; font-size: 11px; font-weight: bold; text-transform: uppercase; background: #ede9fe; color: #5b21b6; }
        .badge.review { background: #fef3c7; color: #92400e; }
        table.items { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
        table.items th, table.items td { border-bottom: 1px solid #e5e7eb; padding: 10px 6px; text-align: left; }
        table.items th { background: #f5f3ff; }
        table.items .num { text-align: right; width: 90px; }
        .total { text-align: right; font-size: 18px; font-weight: bold; }
        .footer { margin-top: 48px; padding-top: 16px; border-top: 1px solid #e5e7eb; text-align: center; color: #6b7280; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="brand">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div class="meta">
            <div class="title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.OrderNumber}}</p>
            <p><strong>Order Date:</strong> {{.OrderDate}}</p>
            <p><span class="badge{{if eq .Status "needs_review"}} review{{end}}">{{.Status}}</span></p>
        </div>
    </div>

    <div class="customer">
        <strong>Bill To:</strong>
        {{if .CustomerName}}<p>{{.CustomerName}}</p>{{end}}
        {{if .CustomerEmail}}<p>{{.CustomerEmail}}</p>{{end}}
    </div>

    <table class="items">
        <thead>
            <tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.LineTotal}}</td></tr>
            {{end}}
        </tbody>
    </table>

    <p class="total">Total: {{.Total}} {{.Currency}}</p>

    <div class="footer">
        <p>Thank you for shopping at {{.Company.Name}}!</p>
        {{if .Company.Email}}<p>Questions about this invoice? Contact us at {{.Company.Email}}</p>{{end}}
    </div>
</body>
</html>
`
