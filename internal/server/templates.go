package server

// dashboardHTML is the single page the service renders. It reads the
// JSON API and redraws every chart when the date range changes.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Salesdash</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
  body { font-family: -apple-system, Segoe UI, Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #222; }
  header { background: #2f4b7c; color: #fff; padding: 16px 24px; display: flex; align-items: center; gap: 24px; flex-wrap: wrap; }
  header h1 { font-size: 20px; margin: 0; }
  header label { font-size: 13px; margin-right: 4px; }
  main { padding: 24px; max-width: 1200px; margin: 0 auto; }
  .metrics { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 24px; }
  .metric { background: #fff; border-radius: 8px; padding: 16px 24px; box-shadow: 0 1px 3px rgba(0,0,0,.1); min-width: 160px; }
  .metric .value { font-size: 26px; font-weight: 600; }
  .metric .label { font-size: 12px; color: #777; text-transform: uppercase; }
  .card { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.1); margin-bottom: 24px; }
  .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; }
  h2 { font-size: 15px; margin: 0 0 12px; }
  table { border-collapse: collapse; width: 100%; font-size: 13px; }
  th, td { text-align: left; padding: 4px 8px; border-bottom: 1px solid #eee; }
  a.export { color: #ffa600; font-size: 13px; }
</style>
</head>
<body>
<header>
  <h1>Salesdash</h1>
  <div>
    <label for="start">From</label>
    <input type="date" id="start" min="{{.MinDate}}" max="{{.MaxDate}}" value="{{.MinDate}}">
    <label for="end">To</label>
    <input type="date" id="end" min="{{.MinDate}}" max="{{.MaxDate}}" value="{{.MaxDate}}">
  </div>
  <a class="export" id="export" href="/api/export">Download XLSX</a>
</header>
<main>
  <div class="metrics">
    <div class="metric"><div class="value" id="m-orders">–</div><div class="label">Total orders</div></div>
    <div class="metric"><div class="value" id="m-revenue">–</div><div class="label">Total revenue</div></div>
    <div class="metric"><div class="value" id="m-review">–</div><div class="label">Avg review score</div></div>
    <div class="metric"><div class="value" id="m-delivery">–</div><div class="label">Avg delivery days</div></div>
  </div>
  <div class="card"><h2>Daily orders &amp; revenue</h2><canvas id="daily" height="80"></canvas></div>
  <div class="grid">
    <div class="card"><h2>Best selling categories</h2><canvas id="topcats"></canvas></div>
    <div class="card"><h2>Worst selling categories</h2><canvas id="bottomcats"></canvas></div>
    <div class="card"><h2>Orders by state</h2><canvas id="states"></canvas></div>
    <div class="card"><h2>Review scores</h2><canvas id="reviews"></canvas></div>
    <div class="card"><h2>Payment types</h2><canvas id="payments"></canvas></div>
    <div class="card"><h2>Top cities</h2><canvas id="cities"></canvas></div>
  </div>
  <div class="card">
    <h2>Best customers (RFM)</h2>
    <div class="grid">
      <div><h2>By recency</h2><table id="rfm-recency"></table></div>
      <div><h2>By frequency</h2><table id="rfm-frequency"></table></div>
      <div><h2>By monetary</h2><table id="rfm-monetary"></table></div>
    </div>
  </div>
</main>
<script>
const currency = {{.Currency}};
const charts = {};

function barChart(id, labels, values, horizontal) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: 'bar',
    data: { labels: labels, datasets: [{ data: values, backgroundColor: '#2f4b7c' }] },
    options: { indexAxis: horizontal ? 'y' : 'x', plugins: { legend: { display: false } } }
  });
}

function rfmTable(id, rows, metric) {
  const table = document.getElementById(id);
  let html = '<tr><th>Customer</th><th>' + metric + '</th></tr>';
  for (const r of rows) {
    const value = metric === 'monetary' ? currency + r.monetary.toFixed(2) : r[metric];
    html += '<tr><td>' + r.customer_id + '</td><td>' + value + '</td></tr>';
  }
  table.innerHTML = html;
}

async function refresh() {
  const start = document.getElementById('start').value;
  const end = document.getElementById('end').value;
  if (start > end) return; // the picker never submits a reversed range
  const params = '?start=' + start + '&end=' + end;
  document.getElementById('export').href = '/api/export' + params;

  const res = await fetch('/api/dashboard' + params);
  if (!res.ok) return;
  const view = await res.json();

  document.getElementById('m-orders').textContent = view.headline.total_orders;
  document.getElementById('m-revenue').textContent = currency + view.headline.total_revenue.toLocaleString();
  document.getElementById('m-review').textContent = view.headline.avg_review_score.toFixed(2);
  document.getElementById('m-delivery').textContent = view.delivery.avg_days.toFixed(1);

  if (charts.daily) charts.daily.destroy();
  charts.daily = new Chart(document.getElementById('daily'), {
    type: 'line',
    data: {
      labels: view.daily.map(d => d.date),
      datasets: [
        { label: 'Orders', data: view.daily.map(d => d.orders), borderColor: '#2f4b7c', yAxisID: 'y' },
        { label: 'Revenue', data: view.daily.map(d => d.revenue), borderColor: '#ffa600', yAxisID: 'y1' }
      ]
    },
    options: { scales: { y: { position: 'left' }, y1: { position: 'right', grid: { drawOnChartArea: false } } } }
  });

  barChart('topcats', view.top_categories.map(c => c.category), view.top_categories.map(c => c.quantity), true);
  barChart('bottomcats', view.bottom_categories.map(c => c.category), view.bottom_categories.map(c => c.quantity), true);
  barChart('states', view.states.map(s => s.name), view.states.map(s => s.orders), true);
  barChart('reviews', view.reviews.map(r => r.score), view.reviews.map(r => r.count), false);
  barChart('payments', view.payments.map(p => p.type), view.payments.map(p => p.orders), false);
  barChart('cities', view.top_cities.map(c => c.name), view.top_cities.map(c => c.orders), true);

  rfmTable('rfm-recency', view.rfm.by_recency, 'recency');
  rfmTable('rfm-frequency', view.rfm.by_frequency, 'frequency');
  rfmTable('rfm-monetary', view.rfm.by_monetary, 'monetary');
}

document.getElementById('start').addEventListener('change', refresh);
document.getElementById('end').addEventListener('change', refresh);
refresh();
</script>
</body>
</html>
`
