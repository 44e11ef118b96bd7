package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Account Bindings Schema

-- Durable mapping between a chat identity and an external provider account.
-- One live binding per (chat, provider); re-linking overwrites in place.
CREATE TABLE IF NOT EXISTS account_bindings (
    chat_id BIGINT NOT NULL,
    provider VARCHAR(32) NOT NULL,
    external_account_id VARCHAR(255) NOT NULL,
    access_token TEXT NOT NULL,
    linked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (chat_id, provider)
);

CREATE INDEX IF NOT EXISTS idx_account_bindings_provider_account
    ON account_bindings (provider, external_account_id);
`
