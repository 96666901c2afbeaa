package view

import "html/template"

var templates = template.Must(template.New("view").Funcs(template.FuncMap{
	"money": money,
}).Parse(`
{{define "notice"}}
{{if .}}
<div class="notification {{.Kind}}" id="notice">
  {{.Message}}
  <span class="close" onclick="document.getElementById('notice').remove()">&times;</span>
</div>
<script>setTimeout(function(){var n=document.getElementById('notice');if(n)n.remove();},5000);</script>
{{end}}
{{end}}

{{define "overview"}}
<div class="rooms-overview">
  {{range .}}
  <div class="room-card">
    <div class="room-header">
      <h3>{{.RoomNumber}}</h3>
      <p>Room {{.RoomNumber}} - {{.Stats.Occupied}} occupied, {{.Stats.Vacant}} vacant</p>
    </div>
    <div class="tables-grid">
      {{$room := .RoomNumber}}
      {{range .Cells}}
      <a class="table {{if .Occupied}}occupied{{else}}vacant{{end}}" href="/tables/{{.ID}}" title="{{.Tooltip}}">{{.Label}}</a>
      {{end}}
    </div>
    <div class="quick-actions">
      <a class="btn btn-success" href="/rooms/{{.RoomNumber}}/vacant">View Vacant</a>
      <a class="btn btn-warning" href="/rooms/{{.RoomNumber}}/stats">Stats</a>
    </div>
  </div>
  {{end}}
</div>
{{end}}

{{define "roster"}}
{{if not .}}
<div class="loading">No students found</div>
{{else}}
<div class="table-container">
  <table>
    <thead>
      <tr>
        <th>Name</th>
        <th>Contact</th>
        <th>Room</th>
        <th>Table</th>
        <th>Amount Paid</th>
        <th>Status</th>
        <th>Actions</th>
      </tr>
    </thead>
    <tbody>
      {{range .}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Contact}}</td>
        <td>{{.RoomNumber}}</td>
        <td>{{if .TableNumber}}{{.TableNumber}}{{else}}N/A{{end}}</td>
        <td>₹{{money .Amount}}</td>
        <td><span class="status-badge {{if .Paid}}status-paid{{else}}status-unpaid{{end}}">{{if .Paid}}Paid{{else}}Unpaid{{end}}</span></td>
        <td>
          <a class="action-btn fee-btn" href="/students/{{.ID}}/fee">Update Fee</a>
          <form method="post" action="/commands/students/{{.ID}}/delete" class="inline"
                onsubmit="return confirm('Are you sure you want to remove this student?')">
            <button class="action-btn delete-btn" type="submit">Remove</button>
          </form>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
</div>
{{end}}
{{end}}

{{define "fees"}}
<div class="fee-cards">
  <div class="card">
    <h3>Total Revenue</h3>
    <div class="stat-number">₹{{money .FeeStats.TotalRevenue}}</div>
    <div class="stat-label">From all students</div>
  </div>
  <div class="card">
    <h3>Paid Students</h3>
    <div class="stat-number">{{.FeeStats.PaidCount}}</div>
    <div class="stat-label">Fees collected</div>
  </div>
  <div class="card">
    <h3>Unpaid Students</h3>
    <div class="stat-number">{{.FeeStats.UnpaidCount}}</div>
    <div class="stat-label">Pending payment</div>
  </div>
</div>
<h4>Fee Details by Student</h4>
{{if not .FeeRows}}
<div class="loading">No students found</div>
{{else}}
<div class="table-container">
  <table>
    <thead>
      <tr>
        <th>Student Name</th>
        <th>Room</th>
        <th>Table</th>
        <th>Amount Paid</th>
        <th>Status</th>
        <th>Actions</th>
      </tr>
    </thead>
    <tbody>
      {{range .FeeRows}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.RoomNumber}}</td>
        <td>{{if .TableNumber}}{{.TableNumber}}{{else}}N/A{{end}}</td>
        <td>₹{{money .Amount}}</td>
        <td><span class="status-badge {{if .Paid}}status-paid{{else}}status-unpaid{{end}}">{{if .Paid}}Paid{{else}}Unpaid{{end}}</span></td>
        <td><a class="action-btn fee-btn" href="/students/{{.ID}}/fee">Update Fee</a></td>
      </tr>
      {{end}}
    </tbody>
  </table>
</div>
{{end}}
{{end}}

{{define "page"}}
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Study Seat Admin</title>
  <style>
    body { font-family: sans-serif; margin: 0; background: #f4f5f7; }
    .container { max-width: 1100px; margin: 0 auto; padding: 16px; }
    .content-section { background: #fff; border-radius: 6px; padding: 16px; margin-bottom: 16px; }
    .stats, .fee-cards { display: flex; gap: 12px; flex-wrap: wrap; }
    .card { flex: 1; min-width: 140px; border: 1px solid #e0e0e0; border-radius: 6px; padding: 12px; text-align: center; }
    .stat-number { font-size: 1.6em; font-weight: bold; }
    .stat-label { color: #666; }
    .rooms-overview { display: flex; gap: 12px; flex-wrap: wrap; }
    .room-card { border: 1px solid #e0e0e0; border-radius: 6px; padding: 12px; }
    .tables-grid { display: grid; grid-template-columns: repeat(5, 32px); gap: 4px; margin: 8px 0; }
    .table { display: block; width: 32px; height: 32px; line-height: 32px; text-align: center; border-radius: 4px; text-decoration: none; color: #333; }
    .table.vacant { background: #d4edda; }
    .table.occupied { background: #f8d7da; }
    table { width: 100%; border-collapse: collapse; }
    th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #eee; }
    .status-paid { color: #1a7f37; }
    .status-unpaid { color: #b02a37; }
    .btn { display: inline-block; padding: 6px 12px; border: none; border-radius: 4px; cursor: pointer; text-decoration: none; }
    .btn-success { background: #1a7f37; color: #fff; }
    .btn-warning { background: #d39e00; color: #fff; }
    .btn-danger { background: #b02a37; color: #fff; }
    .notification { padding: 10px 14px; border-radius: 4px; margin-bottom: 12px; }
    .notification.success { background: #d4edda; }
    .notification.error { background: #f8d7da; }
    .notification .close { float: right; cursor: pointer; }
    .inline { display: inline; }
  </style>
</head>
<body>
<div class="container">
  {{template "notice" .Notice}}

  <section class="content-section" id="dashboard-tab">
    <h2>Dashboard</h2>
    <div class="stats">
      <div class="card"><div class="stat-number">{{.TotalStudents}}</div><div class="stat-label">Total Students</div></div>
      <div class="card"><div class="stat-number">{{.TotalTables}}</div><div class="stat-label">Total Tables</div></div>
      <div class="card"><div class="stat-number">{{.AvailableTables}}</div><div class="stat-label">Available Tables</div></div>
      <div class="card"><div class="stat-number">₹{{money .TotalRevenue}}</div><div class="stat-label">Total Revenue</div></div>
    </div>
  </section>

  <section class="content-section" id="rooms-tab">
    <h2>Room Overview</h2>
    {{template "overview" .Rooms}}
  </section>

  <section class="content-section admin-controls" id="assign-tab">
    <h2>Assign Student</h2>
    <form method="post" action="/commands/assign" id="assignmentForm">
      <input type="text" name="name" placeholder="Student Name" value="{{.Prefill.Name}}" required>
      <input type="text" name="contactNumber" placeholder="Contact Number" value="{{.Prefill.Contact}}" required>
      <select name="roomNumber" required>
        <option value="">Select Room</option>
        {{$prefillRoom := .Prefill.Room}}
        {{range .RoomOptions}}
        <option value="{{.}}" {{if eq . $prefillRoom}}selected{{end}}>{{.}}</option>
        {{end}}
      </select>
      <input type="number" name="tableNumber" placeholder="Table Number" min="1" value="{{.Prefill.Table}}" required>
      <input type="number" name="amountPaid" placeholder="Amount Paid" step="0.01" min="0" value="{{.Prefill.Amount}}" required>
      <button class="btn btn-success" type="submit">Assign Student</button>
    </form>
  </section>

  <section class="content-section" id="students-tab">
    <h2>Students</h2>
    <form method="get" action="/">
      <input type="search" name="q" value="{{.Query}}" placeholder="Search by name, roll, contact or room">
      <button class="btn" type="submit">Search</button>
    </form>
    {{template "roster" .Roster}}
  </section>

  <section class="content-section" id="fee-management-tab">
    <h2>Fee Management</h2>
    {{template "fees" .}}
  </section>

  <section class="content-section" id="room-layout-tab">
    <h2>Detailed Room Layout</h2>
    {{template "overview" .Rooms}}
  </section>

  <section class="content-section danger-zone">
    <form method="post" action="/commands/clear-all"
          onsubmit="return confirm('WARNING: This will permanently delete ALL student data, payments, and table assignments!\n\nThis action cannot be undone. Are you sure you want to continue?')">
      <button class="btn btn-danger" id="clearDataBtn" type="submit">Clear All Data</button>
    </form>
  </section>
</div>
</body>
</html>
{{end}}

{{define "table_detail"}}
<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Table {{.Table.TableNumber}} - {{.Table.RoomNumber}}</title></head>
<body>
<div class="modal-page">
  <h3>Table {{.Table.TableNumber}} - {{.Table.RoomNumber}}</h3>
  {{if .Table.IsOccupied}}
  <div class="detail-row"><span class="detail-label">Status:</span><span class="detail-value occupied">Occupied</span></div>
  <div class="detail-row"><span class="detail-label">Student Name:</span><span class="detail-value">{{.Table.Student.Name}}</span></div>
  <div class="detail-row"><span class="detail-label">Roll Number:</span><span class="detail-value">{{.RollNumber}}</span></div>
  <div class="detail-row"><span class="detail-label">Contact:</span><span class="detail-value">{{.Contact}}</span></div>
  <div class="detail-row"><span class="detail-label">Room:</span><span class="detail-value">{{.Table.RoomNumber}}</span></div>
  <div class="detail-row"><span class="detail-label">Table:</span><span class="detail-value">{{.Table.TableNumber}}</span></div>
  <div class="fee-section">
    <div class="detail-label">Payment Details:</div>
    <div class="fee-amount">₹{{money .Amount}}</div>
    <div class="detail-value {{if .Paid}}paid{{else}}unpaid{{end}}">{{if .Paid}}Paid{{else}}Unpaid{{end}}</div>
  </div>
  <div class="actions">
    <a class="btn btn-success" href="/students/{{.Table.Student.ID}}/fee">Update Fee</a>
    <form method="post" action="/commands/students/{{.Table.Student.ID}}/delete" class="inline"
          onsubmit="return confirm('Are you sure you want to remove this student?')">
      <button class="btn btn-danger" type="submit">Remove</button>
    </form>
  </div>
  {{else}}
  <div class="detail-row"><span class="detail-label">Status:</span><span class="detail-value vacant">Available</span></div>
  <div class="detail-row"><span class="detail-label">Room:</span><span class="detail-value">{{.Table.RoomNumber}}</span></div>
  <div class="detail-row"><span class="detail-label">Table Number:</span><span class="detail-value">{{.Table.TableNumber}}</span></div>
  <div class="detail-row"><span class="detail-label">Room Name:</span><span class="detail-value">{{.Table.RoomName}}</span></div>
  <p>This table is available for assignment</p>
  <a class="btn btn-success" href="/?room={{.Table.RoomNumber}}&table={{.Table.TableNumber}}#assign-tab">Assign Student</a>
  {{end}}
  <p><a href="/">Back to dashboard</a></p>
</div>
</body>
</html>
{{end}}

{{define "vacant_tables"}}
<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Vacant Tables - {{.RoomNumber}}</title></head>
<body>
<div class="modal-page">
  <h3>Vacant Tables - {{.RoomNumber}}</h3>
  <h4>Available Tables in {{.RoomNumber}}</h4>
  <p>Total vacant tables: {{len .Tables}}</p>
  <div class="vacant-grid">
    {{$room := .RoomNumber}}
    {{range .Tables}}
    <a class="vacant-table" href="/?room={{$room}}&table={{.TableNumber}}#assign-tab"><strong>Table {{.TableNumber}}</strong></a>
    {{end}}
  </div>
  <p>Click on a table to select it for assignment</p>
  <p><a href="/">Back to dashboard</a></p>
</div>
</body>
</html>
{{end}}

{{define "room_stats"}}
<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Room Statistics - {{.RoomNumber}}</title></head>
<body>
<div class="modal-page">
  <h3>Room Statistics - {{.RoomNumber}}</h3>
  <div class="detail-row"><span class="detail-label">Total Tables:</span><span class="detail-value">{{.Capacity}}</span></div>
  <div class="detail-row"><span class="detail-label">Occupied Tables:</span><span class="detail-value occupied">{{.Occupied}}</span></div>
  <div class="detail-row"><span class="detail-label">Vacant Tables:</span><span class="detail-value vacant">{{.Vacant}}</span></div>
  <div class="detail-row"><span class="detail-label">Occupancy Rate:</span><span class="detail-value">{{.OccupancyRate}}</span></div>
  <div class="fee-section">
    <div class="detail-label">Total Revenue:</div>
    <div class="fee-amount">₹{{money .Revenue}}</div>
  </div>
  <p><a href="/">Back to dashboard</a></p>
</div>
</body>
</html>
{{end}}

{{define "fee_form"}}
<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Update Fee - {{.Name}}</title></head>
<body>
<div class="modal-page">
  <h3>Update Fee</h3>
  <div class="detail-row"><span class="detail-label">Student Name:</span><span class="detail-value">{{.Name}}</span></div>
  <div class="detail-row"><span class="detail-label">Current Amount Paid:</span><span class="detail-value">₹{{money .Amount}}</span></div>
  <div class="detail-row"><span class="detail-label">Current Status:</span><span class="detail-value {{if .Paid}}paid{{else}}unpaid{{end}}">{{if .Paid}}Paid{{else}}Unpaid{{end}}</span></div>
  <div class="validity-info">
    <div><strong>Start:</strong> {{.Validity.Start}}</div>
    <div><strong>Expires:</strong> <span class="{{if .Validity.Expired}}expired{{else}}valid{{end}}">{{.Validity.Expiry}}{{if .Validity.Expired}} (Expired){{end}}</span></div>
    <div><strong>Duration:</strong> {{.Validity.Months}} month(s)</div>
  </div>
  <form method="post" action="/commands/students/{{.ID}}/payment" class="fee-form">
    <h4>Update Payment</h4>
    <label for="amount">New Amount Paid</label>
    <input type="number" id="amount" name="amount" step="0.01" value="{{money .Amount}}" required>
    <label for="months">Validity (months)</label>
    <input type="number" id="months" name="months" min="1" step="1" value="{{.Validity.Months}}" required>
    <label for="paid">Payment Status</label>
    <select id="paid" name="paid" required>
      <option value="true" {{if .Paid}}selected{{end}}>Paid</option>
      <option value="false" {{if not .Paid}}selected{{end}}>Unpaid</option>
    </select>
    <button class="btn btn-success" type="submit">Update Fee</button>
  </form>
  <p><a href="/">Back to dashboard</a></p>
</div>
</body>
</html>
{{end}}
`))
