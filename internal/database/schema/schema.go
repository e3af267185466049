package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Core User Information
CREATE TABLE IF NOT EXISTS users (
    user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL,
    email VARCHAR(255) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Point Ledger
-- Append only; the balance is always SUM(amount) for the user. There is no
-- cached balance column to drift out of sync.
CREATE TABLE IF NOT EXISTS point_ledger (
    entry_id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    entry_type VARCHAR(32) NOT NULL,
    amount INTEGER NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    reference_id VARCHAR(255) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_point_ledger_user ON point_ledger (user_id, entry_id DESC);
CREATE INDEX IF NOT EXISTS idx_point_ledger_user_type ON point_ledger (user_id, entry_type, created_at);

-- Attendance Records
-- The unique constraint is the defense in depth behind the attendance lock.
CREATE TABLE IF NOT EXISTS attendance_records (
    record_id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    attended_on DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, attended_on)
);

-- Shop Catalog
CREATE TABLE IF NOT EXISTS items (
    item_id SERIAL PRIMARY KEY,
    item_name VARCHAR(100) NOT NULL,
    item_description TEXT NOT NULL DEFAULT '',
    category VARCHAR(50) NOT NULL,
    price INTEGER NOT NULL,
    listed BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Owned Items
-- The unique constraint backs up the purchase lock.
CREATE TABLE IF NOT EXISTS owned_items (
    owned_item_id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    item_id INTEGER NOT NULL REFERENCES items(item_id) ON DELETE RESTRICT,
    purchase_price INTEGER NOT NULL,
    equipped BOOLEAN NOT NULL DEFAULT FALSE,
    purchased_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_owned_items_user ON owned_items (user_id);

-- Named Locks
-- One row per held lock. Acquisition is an upsert that only wins when the
-- row is absent or its lease has lapsed.
CREATE TABLE IF NOT EXISTS named_locks (
    lock_key VARCHAR(255) PRIMARY KEY,
    owner_id UUID NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
);

-- Mail Queue
-- status: queued -> inflight -> (deleted | queued again | dlq)
CREATE TABLE IF NOT EXISTS mail_jobs (
    job_id UUID PRIMARY KEY,
    destination VARCHAR(255) NOT NULL,
    subject TEXT NOT NULL,
    body TEXT NOT NULL,
    attempt INTEGER NOT NULL DEFAULT 0,
    status VARCHAR(16) NOT NULL DEFAULT 'queued',
    lease_until TIMESTAMPTZ,
    last_attempt_at TIMESTAMPTZ,
    last_error TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    enqueued_seq BIGSERIAL
);

CREATE INDEX IF NOT EXISTS idx_mail_jobs_status ON mail_jobs (status, enqueued_seq);
`
