// Package sqlite is the SQLite-backed persistence layer: customer
// records, policy documents and the chunk index all live in one
// database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/deskmate/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// record, policy and chunk store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.deskmate/data/deskmate.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deskmate", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "deskmate.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordStore returns a RecordStore interface backed by this store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s}
}

// PolicyStore returns a PolicyStore interface backed by this store.
func (s *Store) PolicyStore() driven.PolicyStore {
	return &policyStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// QueryRunner returns a QueryRunner interface backed by this store.
func (s *Store) QueryRunner() driven.QueryRunner {
	return &queryRunner{store: s}
}

type queryRunner struct {
	store *Store
}

var _ driven.QueryRunner = (*queryRunner)(nil)

// RunQuery executes an ad-hoc read-only query. Anything but a SELECT
// statement is rejected before touching the database.
func (q *queryRunner) RunQuery(ctx context.Context, query string) ([]map[string]any, error) {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
		return nil, fmt.Errorf("%w: only SELECT queries are allowed", domain.ErrInvalidInput)
	}

	rows, err := q.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			// Text columns come back as []byte from the driver.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Record Store ====================

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

const customerColumns = `id, name, email, phone, address, signup_date,
	account_status, account_type, total_orders, lifetime_value`

// FindCustomer returns the first customer whose name contains the
// substring, orders attached most recent first.
func (r *recordStore) FindCustomer(ctx context.Context, nameSubstring string) (*domain.CustomerRecord, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
		ORDER BY id LIMIT 1
	`, nameSubstring)

	customer, err := scanCustomer(row)
	if err != nil {
		return nil, err
	}

	orders, err := r.findOrders(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	customer.Orders = orders

	return customer, nil
}

func (r *recordStore) findOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, customer_id, order_date, amount, status, items
		FROM orders WHERE customer_id = ?
		ORDER BY order_date DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var orderDate sql.NullTime
		var itemsJSON string
		if err := rows.Scan(&order.ID, &order.CustomerID, &orderDate,
			&order.Amount, &order.Status, &itemsJSON); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		order.OrderDate = orderDate.Time
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshalling order items: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}

// FindTickets returns all tickets for a customer, most recent first.
func (r *recordStore) FindTickets(ctx context.Context, customerID int64) ([]domain.SupportTicket, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, customer_id, title, description, status, priority, category, created_date, resolved_date
		FROM support_tickets WHERE customer_id = ?
		ORDER BY created_date DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("querying tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.SupportTicket
	for rows.Next() {
		var ticket domain.SupportTicket
		var createdDate, resolvedDate sql.NullTime
		if err := rows.Scan(&ticket.ID, &ticket.CustomerID, &ticket.Title, &ticket.Description,
			&ticket.Status, &ticket.Priority, &ticket.Category, &createdDate, &resolvedDate); err != nil {
			return nil, fmt.Errorf("scanning ticket: %w", err)
		}
		ticket.CreatedDate = createdDate.Time
		if resolvedDate.Valid {
			t := resolvedDate.Time
			ticket.ResolvedDate = &t
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	return tickets, nil
}

// SearchCustomers returns every customer whose name, email or phone
// contains the substring. Empty substring returns all customers.
func (r *recordStore) SearchCustomers(ctx context.Context, substring string) ([]domain.CustomerRecord, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
		   OR LOWER(email) LIKE '%' || LOWER(?) || '%'
		   OR phone LIKE '%' || ? || '%'
		ORDER BY id
	`, substring, substring, substring)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.CustomerRecord
	for rows.Next() {
		customer, err := scanCustomerRows(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

// ==================== Policy Store ====================

// policyStore implements driven.PolicyStore.
type policyStore struct {
	store *Store
}

var _ driven.PolicyStore = (*policyStore)(nil)

func (p *policyStore) GetFullText(ctx context.Context, policyID string) (string, error) {
	row := p.store.db.QueryRowContext(ctx,
		"SELECT content FROM policy_documents WHERE id = ?", policyID)

	var content string
	if err := row.Scan(&content); err != nil {
		if err == sql.ErrNoRows {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("scanning policy: %w", err)
	}
	return content, nil
}

func (p *policyStore) SavePolicy(ctx context.Context, doc *domain.PolicyDocument) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := p.store.db.ExecContext(ctx, `
		INSERT INTO policy_documents (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Title, doc.Content, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving policy: %w", err)
	}
	return nil
}

func (p *policyStore) ListPolicies(ctx context.Context) ([]domain.PolicyDocument, error) {
	rows, err := p.store.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM policy_documents ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying policies: %w", err)
	}
	defer rows.Close()

	var docs []domain.PolicyDocument
	for rows.Next() {
		var doc domain.PolicyDocument
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning policy: %w", err)
		}
		doc.CreatedAt = createdAt.Time
		doc.UpdatedAt = updatedAt.Time
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating policies: %w", err)
	}
	return docs, nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

func (c *chunkStore) SaveChunks(ctx context.Context, collection string, chunks []domain.Chunk) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, collection, document_id, content, position, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collection = excluded.collection,
			document_id = excluded.document_id,
			content = excluded.content,
			position = excluded.position,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, collection, chunk.DocumentID,
			chunk.Content, chunk.Position, embeddingBlob, string(metadataJSON)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (c *chunkStore) ListChunks(ctx context.Context, collection string) ([]domain.Chunk, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, embedding, metadata
		FROM chunks WHERE collection = ?
		ORDER BY document_id, position
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		var metadataJSON string
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
			&chunk.Position, &embeddingBlob, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling chunk metadata: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

func (c *chunkStore) DeleteDocumentChunks(ctx context.Context, collection, documentID string) error {
	_, err := c.store.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE collection = ? AND document_id = ?", collection, documentID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

func (c *chunkStore) CountChunks(ctx context.Context, collection string) (int, error) {
	row := c.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE collection = ?", collection)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ==================== Helper Functions ====================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomerInto(scanner rowScanner) (*domain.CustomerRecord, error) {
	var customer domain.CustomerRecord
	var signupDate sql.NullTime
	if err := scanner.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
		&customer.Address, &signupDate, &customer.AccountStatus, &customer.AccountType,
		&customer.TotalOrders, &customer.LifetimeValue); err != nil {
		return nil, err
	}
	customer.SignupDate = signupDate.Time
	return &customer, nil
}

func scanCustomer(row *sql.Row) (*domain.CustomerRecord, error) {
	customer, err := scanCustomerInto(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}
	return customer, nil
}

func scanCustomerRows(rows *sql.Rows) (*domain.CustomerRecord, error) {
	customer, err := scanCustomerInto(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning customer: %w", err)
	}
	return customer, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
