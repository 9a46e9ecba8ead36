package report

// ReportTemplate is the HTML template for the fraud-risk report.
// It is embedded as a Go constant — no external file dependencies.
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --green: #16a34a;
    --red: #dc2626;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
  }
  h1, h2, h3 { font-weight: 600; }
  h1 { font-size: 1.5rem; margin-bottom: 4px; }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  p { margin: 6px 0; }
  .muted { color: var(--muted); font-size: 0.85rem; }

  /* Header */
  .header {
    display: flex;
    justify-content: space-between;
    align-items: flex-start;
    border-bottom: 3px solid var(--accent);
    padding-bottom: 12px;
    margin-bottom: 16px;
  }
  .header-left h1 { color: var(--accent); }
  .header-right { text-align: right; }

  /* Verdict box */
  .verdict-box {
    display: flex;
    align-items: center;
    gap: 24px;
    padding: 16px;
    border-radius: 8px;
    margin: 12px 0;
  }
  .verdict-box.high-risk { background: #fef2f2; border-left: 5px solid var(--red); }
  .verdict-box.low-risk { background: #dcfce7; border-left: 5px solid var(--green); }
  .verdict-box.unknown { background: #f3f4f6; border-left: 5px solid var(--muted); }
  .verdict-label { font-size: 1.4rem; font-weight: 700; }
  .verdict-box.high-risk .verdict-label { color: var(--red); }
  .verdict-box.low-risk .verdict-label { color: var(--green); }
  .verdict-box.unknown .verdict-label { color: var(--muted); }
  .score-value { font-size: 2rem; font-weight: 700; }

  /* Tables */
  table { width: 100%; border-collapse: collapse; margin: 8px 0 16px; font-size: 0.9rem; }
  th { background: var(--section-bg); text-align: left; padding: 8px; font-weight: 600; }
  td { padding: 8px; border-bottom: 1px solid var(--border); }
  td.num { text-align: right; font-variant-numeric: tabular-nums; }
  th.num { text-align: right; }

  /* Missing fields */
  .missing-box {
    background: #fefce8;
    border-left: 5px solid #eab308;
    padding: 12px;
    border-radius: 6px;
    margin: 12px 0;
  }
  .missing-box ul { margin: 6px 0 0 20px; }

  /* Section */
  .section { margin: 20px 0; }
  .section-summary {
    background: var(--section-bg);
    padding: 12px;
    border-radius: 6px;
    margin: 8px 0;
    font-size: 0.95rem;
    line-height: 1.7;
  }

  /* Footer */
  .footer {
    margin-top: 30px;
    padding-top: 12px;
    border-top: 2px solid var(--border);
    font-size: 0.8rem;
    color: var(--muted);
    text-align: center;
  }

  @media print {
    body { max-width: 100%; padding: 10px; }
    .section { page-break-inside: avoid; }
  }
</style>
</head>
<body>

<!-- ═══════ HEADER ═══════ -->
<div class="header">
  <div class="header-left">
    <h1>{{.CompanyName}}</h1>
    <p class="muted">Beneish M-Score Fraud Risk Analysis</p>
  </div>
  <div class="header-right">
    <p class="muted">{{.GeneratedAt}}</p>
    <p class="muted">{{.Author}}</p>
  </div>
</div>

<!-- ═══════ VERDICT ═══════ -->
<div class="section">
  <h2>Verdict</h2>
  <div class="verdict-box {{.RiskClass}}">
    <div class="score-value">{{.MScore}}</div>
    <div>
      <div class="verdict-label">{{.RiskLabel}}</div>
      <div class="muted">Manipulation threshold: {{.Threshold}}</div>
    </div>
  </div>
  <div class="section-summary">{{.Interpretation}}</div>
</div>

<!-- ═══════ MISSING DATA ═══════ -->
{{if .MissingFields}}
<div class="section">
  <h2>Missing Data</h2>
  <div class="missing-box">
    <p>The following required fields could not be found in the source document:</p>
    <ul>
    {{range .MissingFields}}
      <li>{{.}}</li>
    {{end}}
    </ul>
  </div>
</div>
{{end}}

<!-- ═══════ RATIOS ═══════ -->
{{if .Ratios}}
<div class="section">
  <h2>Beneish Ratios</h2>
  <table>
    <thead><tr><th>Ratio</th><th class="num">Value</th><th>Description</th></tr></thead>
    <tbody>
    {{range .Ratios}}
    <tr>
      <td><strong>{{.Name}}</strong></td>
      <td class="num">{{.Value}}</td>
      <td>{{.Description}}</td>
    </tr>
    {{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ FINANCIAL DATA ═══════ -->
{{if .Financials}}
<div class="section">
  <h2>Extracted Financial Data</h2>
  <table>
    <thead><tr><th>Metric</th><th class="num">Year 1</th><th class="num">Year 2</th></tr></thead>
    <tbody>
    {{range .Financials}}
    <tr>
      <td>{{.Label}}</td>
      <td class="num">{{.Year1}}</td>
      <td class="num">{{.Year2}}</td>
    </tr>
    {{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ FOOTER ═══════ -->
<div class="footer">
  <p><strong>Disclaimer:</strong> The Beneish M-Score is a statistical screen for earnings manipulation,
  not proof of fraud. This report is for informational purposes only and does not constitute
  financial or legal advice.</p>
  <p>Generated by FraudLens · {{.GeneratedAt}}</p>
</div>

</body>
</html>`
