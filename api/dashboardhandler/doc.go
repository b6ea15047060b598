// Package dashboardhandler serves the record dashboard: the listing page and
// the add and delete endpoints backed by an interfaces.RecordStore.
//
// Routes:
//   - GET /, GET /dashboard - render the record listing, newest first
//   - POST /data - create a record from a form or JSON body, redirect to /dashboard
//   - DELETE /data/{id} - delete a record, respond {"success": true}
package dashboardhandler
