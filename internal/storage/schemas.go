package storage

// TodoSchema describes one record of todos.json
const TodoSchema = `{
  "type": "object",
  "required": ["id", "userId", "content", "status", "createdAt", "updatedAt"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "userId": {"type": "string", "minLength": 1},
    "content": {"type": "string"},
    "dueDate": {"type": "string"},
    "status": {"enum": ["Unfinished", "Done"]},
    "createdAt": {"type": "string"},
    "updatedAt": {"type": "string"}
  }
}`

// UserSchema describes one record of auth.json
const UserSchema = `{
  "type": "object",
  "required": ["id", "email", "password", "createdAt", "updatedAt"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "email": {"type": "string", "minLength": 1},
    "password": {"type": "string", "minLength": 1},
    "createdAt": {"type": "string"},
    "updatedAt": {"type": "string"}
  }
}`
