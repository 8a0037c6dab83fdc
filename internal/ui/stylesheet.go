package ui

const stylesheet = `
* { box-sizing: border-box; }
body { margin: 0; font-family: Inter, system-ui, sans-serif; background: #f5f6f8; color: #1f2328; }
.header { background: #24292f; color: #fff; padding: 24px 32px; }
.header h1 { margin: 0 0 4px; font-size: 24px; }
.header p { margin: 0; color: #c9d1d9; }
.main-content { max-width: 1100px; margin: 0 auto; padding: 24px; }
.stats-container { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; margin-bottom: 24px; }
.stat-card { background: #fff; border-radius: 8px; padding: 16px; border-top: 4px solid #8c959f; }
.stat-card h3 { margin: 0 0 8px; font-size: 14px; color: #57606a; }
.stat-card.pending { border-color: #bf8700; }
.stat-card.selected { border-color: #1a7f37; }
.stat-card.rejected { border-color: #cf222e; }
.stat-number { font-size: 28px; font-weight: 600; }
.filters { display: flex; gap: 12px; margin-bottom: 16px; }
.search-bar { flex: 1; }
.search-input, .status-filter { width: 100%; padding: 8px 12px; border: 1px solid #d0d7de; border-radius: 6px; }
.status-filter { width: auto; }
.candidate-list { background: #fff; border-radius: 8px; overflow: hidden; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 10px 12px; border-bottom: 1px solid #eaeef2; font-size: 14px; }
th { background: #f6f8fa; }
.status-badge { padding: 2px 8px; border-radius: 12px; font-size: 12px; text-transform: capitalize; }
.status-pending { background: #fff8c5; color: #7d4e00; }
.status-selected { background: #dafbe1; color: #116329; }
.status-rejected { background: #ffebe9; color: #a40e26; }
form.inline { display: inline; }
.btn { display: inline-block; padding: 4px 10px; margin-right: 4px; border: 1px solid #d0d7de; border-radius: 6px; background: #f6f8fa; color: inherit; text-decoration: none; cursor: pointer; font-size: 13px; }
.btn-select { background: #1f883d; border-color: #1f883d; color: #fff; }
.btn-reject { background: #cf222e; border-color: #cf222e; color: #fff; }
.btn.disabled { opacity: .5; cursor: default; }
.pagination { display: flex; align-items: center; justify-content: center; gap: 16px; margin-top: 16px; }
.empty-state, .error { background: #fff; border-radius: 8px; padding: 32px; text-align: center; color: #57606a; }
`
