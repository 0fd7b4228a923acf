package mysql

// Email uses a binary collation so lookups are case-sensitive, matching the
// Mongo store.
const createUsersTable = `CREATE TABLE IF NOT EXISTS users (
	id            BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
	email         VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
	full_name     VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role          VARCHAR(50)  NOT NULL DEFAULT 'FARMER',
	is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
	role_selected BOOLEAN      NOT NULL DEFAULT FALSE,
	created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const dropUsersTable = `DROP TABLE IF EXISTS users`
