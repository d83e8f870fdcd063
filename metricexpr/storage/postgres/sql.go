package postgres

const columnsSQL = `
	SELECT ordinal_position, column_name, data_type, is_nullable = 'NO'
	FROM information_schema.columns
	WHERE table_schema = $1 AND table_name = $2
	ORDER BY ordinal_position`
