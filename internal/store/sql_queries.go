package store

// Static SQL used by the repositories. Dynamic queries (filters, partial
// updates, pagination) are built with squirrel at call sites.
const (
	createUser = `
		INSERT INTO users (id, email, user_name, full_name, password_hash, role,
		                   is_profile_completed, profile_completion_token, profile_completion_token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, email, user_name, full_name, password_hash, role,
		          is_profile_completed, profile_completion_token, profile_completion_token_expires_at,
		          created_at, updated_at`

	findUserByEmail = `
		SELECT id, email, user_name, full_name, password_hash, role,
		       is_profile_completed, profile_completion_token, profile_completion_token_expires_at,
		       created_at, updated_at
		FROM users
		WHERE email = $1`

	findUserByID = `
		SELECT id, email, user_name, full_name, password_hash, role,
		       is_profile_completed, profile_completion_token, profile_completion_token_expires_at,
		       created_at, updated_at
		FROM users
		WHERE id = $1`

	findUserByCompletionToken = `
		SELECT id, email, user_name, full_name, password_hash, role,
		       is_profile_completed, profile_completion_token, profile_completion_token_expires_at,
		       created_at, updated_at
		FROM users
		WHERE profile_completion_token = $1`

	updateUser = `
		UPDATE users
		SET user_name = $2, full_name = $3, password_hash = $4,
		    is_profile_completed = $5, profile_completion_token = $6,
		    profile_completion_token_expires_at = $7, updated_at = now()
		WHERE id = $1
		RETURNING id, email, user_name, full_name, password_hash, role,
		          is_profile_completed, profile_completion_token, profile_completion_token_expires_at,
		          created_at, updated_at`

	createPosition = `
		INSERT INTO positions (id, name, location, type, what_we_offer, why_we_are_looking, responsibilities, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, location, type, what_we_offer, why_we_are_looking, responsibilities, skills,
		          created_at, updated_at`

	getPositionWithCount = `
		SELECT p.id, p.name, p.location, p.type, p.what_we_offer, p.why_we_are_looking,
		       p.responsibilities, p.skills, p.created_at, p.updated_at,
		       COUNT(a.id) AS applications_count
		FROM positions p
		LEFT JOIN applications a ON a.position_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`

	listPositionsWithCount = `
		SELECT p.id, p.name, p.location, p.type, p.what_we_offer, p.why_we_are_looking,
		       p.responsibilities, p.skills, p.created_at, p.updated_at,
		       COUNT(a.id) AS applications_count
		FROM positions p
		LEFT JOIN applications a ON a.position_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	countPositions = `SELECT COUNT(*) FROM positions`

	deletePosition = `DELETE FROM positions WHERE id = $1`

	applicationSummariesByPosition = `
		SELECT id, first_name, last_name, email, status, created_at
		FROM applications
		WHERE position_id = $1
		ORDER BY created_at DESC`

	createApplication = `
		INSERT INTO applications (id, first_name, last_name, email, phone, available_from,
		                          location, expected_salary, files, status, position_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, first_name, last_name, email, phone, available_from, location,
		          expected_salary, files, status, position_id, created_at, updated_at`

	getApplicationByID = `
		SELECT id, first_name, last_name, email, phone, available_from, location,
		       expected_salary, files, status, position_id, created_at, updated_at
		FROM applications
		WHERE id = $1`

	listApplicationsByPosition = `
		SELECT id, first_name, last_name, email, phone, available_from, location,
		       expected_salary, files, status, position_id, created_at, updated_at
		FROM applications
		WHERE position_id = $1
		ORDER BY created_at DESC`

	updateApplicationStatus = `
		UPDATE applications
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, first_name, last_name, email, phone, available_from, location,
		          expected_salary, files, status, position_id, created_at, updated_at`

	deleteApplication = `DELETE FROM applications WHERE id = $1`

	deleteApplicationsByPosition = `DELETE FROM applications WHERE position_id = $1`

	createContact = `
		INSERT INTO contacts (id, full_name, organization, email, area_of_interest, representation, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, full_name, organization, email, area_of_interest, representation, message,
		          created_at, updated_at`

	listContacts = `
		SELECT id, full_name, organization, email, area_of_interest, representation, message,
		       created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	countContacts = `SELECT COUNT(*) FROM contacts`

	upsertPage = `
		INSERT INTO pages (id, title, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (title) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
		RETURNING id, title, data, created_at, updated_at`

	getPageByTitle = `
		SELECT id, title, data, created_at, updated_at
		FROM pages
		WHERE title = $1`

	listPageTitles = `SELECT title FROM pages ORDER BY title`

	listPages = `
		SELECT id, title, data, created_at, updated_at
		FROM pages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	countPages = `SELECT COUNT(*) FROM pages`

	upsertService = `
		INSERT INTO services (id, title, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (title) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
		RETURNING id, title, data, created_at, updated_at`

	getServiceByTitle = `
		SELECT id, title, data, created_at, updated_at
		FROM services
		WHERE title = $1`

	listServiceTitles = `SELECT title FROM services ORDER BY title`

	listServices = `
		SELECT id, title, data, created_at, updated_at
		FROM services
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	countServices = `SELECT COUNT(*) FROM services`

	getConfiguration = `
		SELECT id, data, created_at, updated_at
		FROM configuration
		ORDER BY created_at
		LIMIT 1`

	insertConfiguration = `
		INSERT INTO configuration (id, data)
		VALUES ($1, $2)
		RETURNING id, data, created_at, updated_at`

	updateConfiguration = `
		UPDATE configuration
		SET data = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, data, created_at, updated_at`
)
