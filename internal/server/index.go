package server

// Minimal form page served on GET /. Posts a multipart form straight to the
// translate endpoint so the service can be driven from a browser.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Translation Gateway</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
textarea { width: 100%; height: 8rem; }
pre { background: #f4f4f4; padding: 1rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Translation Gateway</h1>
<form id="f">
<p><textarea name="text" placeholder="Text to translate"></textarea></p>
<p><input type="file" name="file"> <input type="text" name="lang" placeholder="Target language (e.g. fr)" size="24"></p>
<p><button type="submit">Translate</button></p>
</form>
<pre id="out"></pre>
<script>
document.getElementById('f').addEventListener('submit', async (e) => {
  e.preventDefault();
  const res = await fetch('/v1/translate', { method: 'POST', body: new FormData(e.target) });
  const data = await res.json();
  document.getElementById('out').textContent = data.translation || data.error || JSON.stringify(data);
});
</script>
</body>
</html>
`
