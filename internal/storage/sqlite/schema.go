package sqlite

const schema = `
-- Tasks table
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    legacy_id TEXT NOT NULL DEFAULT '',
    team TEXT NOT NULL DEFAULT '',
    project TEXT NOT NULL DEFAULT '',
    purpose TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL CHECK(length(title) > 0),
    owner TEXT NOT NULL DEFAULT '',
    issue_date TEXT NOT NULL DEFAULT '',
    start_date TEXT NOT NULL DEFAULT '',
    due_date TEXT NOT NULL DEFAULT '',
    duration INTEGER NOT NULL DEFAULT 1 CHECK(duration >= 1),
    status TEXT NOT NULL DEFAULT 'Todo',
    priority TEXT NOT NULL DEFAULT 'Medium',
    dependency TEXT NOT NULL DEFAULT '',
    date_history TEXT NOT NULL DEFAULT '[]',
    is_checkpoint INTEGER NOT NULL DEFAULT 0,
    issue_pool INTEGER NOT NULL DEFAULT 0,
    acceptance_criteria TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    verification TEXT NOT NULL DEFAULT '',
    reviewer TEXT NOT NULL DEFAULT '',
    parent_id TEXT NOT NULL DEFAULT '',
    node_type TEXT NOT NULL DEFAULT '',
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id);

-- Events table (audit trail). No FK cascade: a deleted task keeps its
-- history from the ledger's perspective.
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    task_id TEXT NOT NULL,
    event_type TEXT NOT NULL,
    actor TEXT NOT NULL,
    old_value TEXT,
    new_value TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_events_task ON events(task_id);
CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);

-- Config table
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
