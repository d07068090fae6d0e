package db

const schema = `
CREATE TABLE IF NOT EXISTS picks (
	id            UUID PRIMARY KEY,
	user_id       TEXT NOT NULL,
	game_id       TEXT NOT NULL,
	market_type   TEXT NOT NULL,
	selection     TEXT NOT NULL,
	line          DOUBLE PRECISION,
	odds          INTEGER NOT NULL CHECK (odds <> 0),
	stake_units   DOUBLE PRECISION NOT NULL CHECK (stake_units > 0),
	book_slug     TEXT,
	notes         TEXT,
	snapshot      JSONB,
	status        TEXT NOT NULL DEFAULT 'open',
	result_units  DOUBLE PRECISION,
	settled_at    TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS picks_user_created_idx ON picks (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS user_preferences (
	user_id           TEXT PRIMARY KEY,
	bankroll          DOUBLE PRECISION NOT NULL CHECK (bankroll >= 0),
	kelly_multiplier  DOUBLE PRECISION NOT NULL CHECK (kelly_multiplier >= 0),
	max_stake_pct     DOUBLE PRECISION NOT NULL CHECK (max_stake_pct BETWEEN 0 AND 1),
	min_stake         DOUBLE PRECISION NOT NULL CHECK (min_stake >= 0),
	max_stake         DOUBLE PRECISION CHECK (max_stake >= 0),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
